package report

import (
	"context"

	"github.com/assetops/backend/internal/application/listview"
	"github.com/assetops/backend/internal/domain/shared"
)

// MaxRows caps the rows loaded into one report
const MaxRows = 5000

// RowSource loads the rows of one report entity for the caller's tenant
type RowSource func(ctx context.Context, filter shared.Filter) ([]listview.Record, error)

// ListSource adapts a paginated list operation into a RowSource. It walks the
// pages until the result or MaxRows is exhausted.
func ListSource[D any](list func(context.Context, shared.Filter) (*shared.Paginated[D], error)) RowSource {
	return func(ctx context.Context, filter shared.Filter) ([]listview.Record, error) {
		filter.PageSize = shared.MaxPageSize
		var items []D
		for page := 1; len(items) < MaxRows; page++ {
			filter.Page = page
			result, err := list(ctx, filter)
			if err != nil {
				return nil, err
			}
			items = append(items, result.Items...)
			if page >= result.TotalPages {
				break
			}
		}
		if len(items) > MaxRows {
			items = items[:MaxRows]
		}
		return listview.ToRecords(items)
	}
}
