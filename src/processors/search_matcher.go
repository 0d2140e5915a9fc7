package processors

import (
	"fmt"
	"strings"

	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/utils"
)

type searchMatcherImpl struct{}

func NewSearchMatcher() SearchMatcher {
	return &searchMatcherImpl{}
}

// SearchTransactions matches the query against address, realized-by and house
// number. A blank query returns the input unchanged.
func (m *searchMatcherImpl) SearchTransactions(txs []models.Transaction, query string) []models.Transaction {
	if strings.TrimSpace(query) == "" {
		return txs
	}
	needle := utils.FoldText(query)
	result := []models.Transaction{}
	for _, tx := range txs {
		if matchAny(needle, tx.Address, tx.RealizedBy, tx.HouseNumber) {
			result = append(result, tx)
		}
	}
	return result
}

// SearchRecords is the generic form over arbitrary records. Missing or nil
// fields never match.
func (m *searchMatcherImpl) SearchRecords(items []map[string]any, query string, fields []string) []map[string]any {
	if strings.TrimSpace(query) == "" {
		return items
	}
	needle := utils.FoldText(query)
	result := []map[string]any{}
	for _, item := range items {
		values := make([]string, 0, len(fields))
		for _, field := range fields {
			v, ok := item[field]
			if !ok || v == nil {
				continue
			}
			if s, isString := v.(string); isString {
				values = append(values, s)
			} else {
				values = append(values, fmt.Sprint(v))
			}
		}
		if matchAny(needle, values...) {
			result = append(result, item)
		}
	}
	return result
}

func matchAny(foldedNeedle string, fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(utils.FoldText(f), foldedNeedle) {
			return true
		}
	}
	return false
}
