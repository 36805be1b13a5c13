package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contentstudio/asset-library/pkg/assets"
	"github.com/contentstudio/asset-library/pkg/server"
)

var (
	assetFilters   []string
	assetSearch    string
	assetQueryExpr string
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Browse and manage library assets",
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets, optionally filtered",
	Long: `List assets. Filters combine with AND semantics; a dimension set to "All"
is unconstrained.

Examples:
  assetctl assets list --filter type=Banner --filter dateRange=week
  assetctl assets list --search holiday
  assetctl assets list --query 'type = "Banner" AND "holiday"'`,
	RunE: runAssetsList,
}

var assetsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rec assets.AssetRecord
		if err := newClient().getJSON(server.BasePath+"/assets/"+args[0], &rec); err != nil {
			return err
		}
		return printJSON(rec)
	},
}

var assetsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve an asset pending QC review",
	Args:  cobra.ExactArgs(1),
	RunE:  qcDecision("approve"),
}

var assetsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an asset pending QC review",
	Args:  cobra.ExactArgs(1),
	RunE:  qcDecision("reject"),
}

func init() {
	assetsListCmd.Flags().StringArrayVar(&assetFilters, "filter", nil, "Filter dimension as name=value (repeatable)")
	assetsListCmd.Flags().StringVar(&assetSearch, "search", "", "Free-text search over names, taxonomy, and linked entities")
	assetsListCmd.Flags().StringVar(&assetQueryExpr, "query", "", `Filter query expression, e.g. 'type = "Banner" AND "holiday"'`)

	assetsCmd.AddCommand(assetsListCmd)
	assetsCmd.AddCommand(assetsGetCmd)
	assetsCmd.AddCommand(assetsApproveCmd)
	assetsCmd.AddCommand(assetsRejectCmd)
}

type assetListResponse struct {
	Items     []assets.AssetRecord `json:"items"`
	TotalSize int                  `json:"totalSize"`
}

func runAssetsList(cmd *cobra.Command, args []string) error {
	params := url.Values{}
	for _, f := range assetFilters {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid --filter %q: expected name=value", f)
		}
		params.Set(name, value)
	}
	if assetSearch != "" {
		params.Set("q", assetSearch)
	}
	if assetQueryExpr != "" {
		params.Set("filterQuery", assetQueryExpr)
	}

	path := server.BasePath + "/assets/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp assetListResponse
	if err := newClient().getJSON(path, &resp); err != nil {
		return err
	}

	if outputFmt() != "table" {
		return printOutput(resp)
	}

	rows := make([][]string, 0, len(resp.Items))
	for _, a := range resp.Items {
		date := ""
		if a.Date != nil {
			date = a.Date.Format("2006-01-02")
		}
		rows = append(rows, []string{
			a.ID,
			truncate(a.Name, 40),
			a.Type,
			string(a.ApplicationType),
			string(a.Status),
			date,
			a.CreatedBy,
		})
	}
	printTable([]string{"id", "name", "type", "application", "status", "date", "created by"}, rows)
	fmt.Printf("\n%d asset(s)\n", resp.TotalSize)
	return nil
}

func qcDecision(action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var rec assets.AssetRecord
		if err := newClient().postJSON(server.BasePath+"/assets/"+args[0]+"/"+action, nil, &rec); err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", rec.ID, rec.Status)
		return nil
	}
}
