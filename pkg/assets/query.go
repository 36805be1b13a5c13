package assets

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// The filter query language is a flat AND-combination of field selections
// and free-text terms, e.g.:
//
//	status = "Draft" AND type = "article" AND "launch"
//
// Field selections compile into FilterCriteria dimensions; bare quoted
// strings become the free-text search query.

type parsedQuery struct {
	Clauses []*queryClause `parser:"@@ ( 'AND' @@ )*"`
}

type queryClause struct {
	Pair *fieldClause `parser:"@@"`
	Text *string      `parser:"| @String"`
}

type fieldClause struct {
	Field string `parser:"@Ident '='"`
	Value string `parser:"@String"`
}

var queryParser = participle.MustBuild[parsedQuery](
	participle.Unquote("String"),
)

// queryFields is the set of field names the query language accepts, one per
// filter dimension.
var queryFields = mapset.NewSet(
	"type", "category", "contentType", "applicationType",
	"campaign", "service", "subService", "project", "task",
	"repositoryItem", "creator", "dateRange", "usageStatus",
)

// ParseQuery parses a filter query string into criteria plus a free-text
// search query. Unknown field names are a parse error.
func ParseQuery(input string) (FilterCriteria, string, error) {
	var c FilterCriteria
	input = strings.TrimSpace(input)
	if input == "" {
		return c, "", nil
	}

	parsed, err := queryParser.ParseString("", input)
	if err != nil {
		return c, "", fmt.Errorf("parsing filter query: %w", err)
	}

	var terms []string
	for _, clause := range parsed.Clauses {
		if clause.Text != nil {
			terms = append(terms, *clause.Text)
			continue
		}
		pair := clause.Pair
		if !queryFields.Contains(pair.Field) {
			return FilterCriteria{}, "", fmt.Errorf("unknown filter field %q", pair.Field)
		}
		switch pair.Field {
		case "type":
			c.Type = pair.Value
		case "category":
			c.Category = pair.Value
		case "contentType":
			c.ContentType = pair.Value
		case "applicationType":
			c.ApplicationType = pair.Value
		case "campaign":
			c.Campaign = pair.Value
		case "service":
			c.Service = pair.Value
		case "subService":
			c.SubService = pair.Value
		case "project":
			c.Project = pair.Value
		case "task":
			c.Task = pair.Value
		case "repositoryItem":
			c.RepositoryItem = pair.Value
		case "creator":
			c.Creator = pair.Value
		case "dateRange":
			c.DateRange = pair.Value
		case "usageStatus":
			c.UsageStatus = pair.Value
		}
	}

	return c, strings.Join(terms, " "), nil
}
