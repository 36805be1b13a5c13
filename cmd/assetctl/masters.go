package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentstudio/asset-library/pkg/masters"
	"github.com/contentstudio/asset-library/pkg/server"
)

var mastersCmd = &cobra.Command{
	Use:   "masters",
	Short: "Manage the master lists (categories, types, keywords)",
}

var mastersCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List asset categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out []masters.CategoryMaster
		if err := newClient().getJSON(server.BasePath+"/masters/categories", &out); err != nil {
			return err
		}
		return printMasterList(out, func(c masters.CategoryMaster) (int64, string) { return c.ID, c.Name })
	},
}

var mastersTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List asset types",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out []masters.TypeMaster
		if err := newClient().getJSON(server.BasePath+"/masters/types", &out); err != nil {
			return err
		}
		return printMasterList(out, func(t masters.TypeMaster) (int64, string) { return t.ID, t.Name })
	},
}

var mastersKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out []masters.KeywordMaster
		if err := newClient().getJSON(server.BasePath+"/masters/keywords", &out); err != nil {
			return err
		}
		return printMasterList(out, func(k masters.KeywordMaster) (int64, string) { return k.ID, k.Name })
	},
}

var mastersAddCategoryCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Create or refresh a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rec masters.CategoryMaster
		if err := newClient().postJSON(server.BasePath+"/masters/categories", map[string]string{"name": args[0]}, &rec); err != nil {
			return err
		}
		fmt.Printf("category %q (id %d)\n", rec.Name, rec.ID)
		return nil
	},
}

var mastersAddTypeCmd = &cobra.Command{
	Use:   "add-type <name>",
	Short: "Create or refresh an asset type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rec masters.TypeMaster
		if err := newClient().postJSON(server.BasePath+"/masters/types", map[string]string{"name": args[0]}, &rec); err != nil {
			return err
		}
		fmt.Printf("type %q (id %d)\n", rec.Name, rec.ID)
		return nil
	},
}

func init() {
	mastersCmd.AddCommand(mastersCategoriesCmd)
	mastersCmd.AddCommand(mastersTypesCmd)
	mastersCmd.AddCommand(mastersKeywordsCmd)
	mastersCmd.AddCommand(mastersAddCategoryCmd)
	mastersCmd.AddCommand(mastersAddTypeCmd)
}

func printMasterList[T any](items []T, fields func(T) (int64, string)) error {
	if outputFmt() != "table" {
		return printOutput(items)
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		id, name := fields(item)
		rows = append(rows, []string{fmt.Sprintf("%d", id), name})
	}
	printTable([]string{"id", "name"}, rows)
	return nil
}
