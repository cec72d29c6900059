package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
)

// reportEntries accepts a report body that is either one entry or a list.
type reportEntries []ReportEntryDTO

func (r *reportEntries) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var one ReportEntryDTO
		if err := json.Unmarshal(data, &one); err != nil {
			return fmt.Errorf("decoding report entry: %w", err)
		}
		*r = reportEntries{one}
		return nil
	}
	var many []ReportEntryDTO
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("decoding report entries: %w", err)
	}
	*r = many
	return nil
}

func (b *HTTPBackend) CategoryReport(ctx context.Context, accountID int64) (models.Report, error) {
	var resp reportEntries
	path := config.Path(b.endpoints.ReportAllCategories, map[string]int64{"accountId": accountID})
	if err := b.doer.Get(ctx, path, &resp); err != nil {
		return models.Report{}, err
	}
	return models.Report{AccountID: accountID, Entries: mapSlice(resp, ReportEntryToModel)}, nil
}

func (b *HTTPBackend) CategoryReportFor(ctx context.Context, accountID, categoryID int64) (models.Report, error) {
	var resp reportEntries
	path := config.Path(b.endpoints.ReportByCategory, map[string]int64{"accountId": accountID, "categoryId": categoryID})
	if err := b.doer.Get(ctx, path, &resp); err != nil {
		return models.Report{}, err
	}
	return models.Report{
		AccountID:  accountID,
		CategoryID: categoryID,
		Entries:    mapSlice(resp, ReportEntryToModel),
	}, nil
}
