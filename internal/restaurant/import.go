package restaurant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/validator"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportColumns is the header row an import spreadsheet starts with.
// category_ids and regular_holiday_ids are comma separated and may be empty.
var ImportColumns = []string{
	"name",
	"description",
	"lowest_price",
	"highest_price",
	"postal_code",
	"address",
	"opening_time",
	"closing_time",
	"seating_capacity",
	"category_ids",
	"regular_holiday_ids",
}

// Import creates restaurants from the first sheet of an .xlsx workbook.
// Invalid rows are reported and skipped; valid rows are inserted together.
func (s *RestaurantService) Import(ctx context.Context, r io.Reader) (*ImportResponse, error) {
	log := logger.FromContext(ctx)

	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %v %w", err, ErrInvalidImportFile)
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheet %w", ErrInvalidImportFile)
	}
	rows, err := xl.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows %w", sheets[0], ErrInvalidImportFile)
	}

	type pending struct {
		row     int
		request *RestaurantRequest
	}

	resp := &ImportResponse{Skipped: []ImportRowError{}}
	var valid []pending
	for i, cells := range rows[1:] {
		rowNumber := i + 2
		if isBlank(cells) {
			continue
		}

		request, fields := parseRow(cells)
		if len(fields) == 0 {
			if err := validator.ValidateStruct(request); err != nil {
				if errResp, ok := validator.ToErrorResponse(err); ok {
					fields = errResp.Errors
				} else {
					fields = map[string]string{"row": err.Error()}
				}
			}
		}
		if len(fields) == 0 {
			request.normalize()
			if verr := checkRequest(request); verr.HasErrors() {
				fields = verr.Fields
			}
		}
		if len(fields) > 0 {
			log.Warn("import row skipped", "row", rowNumber, "fields", len(fields))
			resp.Skipped = append(resp.Skipped, ImportRowError{Row: rowNumber, Errors: fields})
			continue
		}
		valid = append(valid, pending{row: rowNumber, request: request})
	}

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		for _, p := range valid {
			if err := s.checkRelations(ctx, tx, p.request); err != nil {
				var verr *sharedError.ValidationError
				if errors.As(err, &verr) {
					resp.Skipped = append(resp.Skipped, ImportRowError{Row: p.row, Errors: verr.Fields})
					continue
				}
				return err
			}

			restaurant := &model.Restaurant{}
			p.request.apply(restaurant)
			if err := s.restaurantRepository.Create(ctx, tx, restaurant); err != nil {
				return fmt.Errorf("import row %d: %w", p.row, err)
			}
			if err := s.syncRelations(ctx, tx, restaurant.ID, p.request); err != nil {
				return fmt.Errorf("import row %d: %w", p.row, err)
			}
			resp.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Restaurants imported", "imported", resp.Imported, "skipped", len(resp.Skipped))
	return resp, nil
}

// parseRow maps cells onto a request. Cells that cannot be converted are
// returned as field errors.
func parseRow(cells []string) (*RestaurantRequest, map[string]string) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	fields := map[string]string{}
	number := func(i int) *int {
		raw := cell(i)
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields[ImportColumns[i]] = fmt.Sprintf("%sは整数で入力してください。", ImportColumns[i])
			return nil
		}
		return &n
	}
	ids := func(i int) []uint32 {
		raw := cell(i)
		if raw == "" {
			return nil
		}
		var out []uint32
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil || id == 0 {
				fields[ImportColumns[i]] = fmt.Sprintf("%sはカンマ区切りのIDで入力してください。", ImportColumns[i])
				return nil
			}
			out = append(out, uint32(id))
		}
		return out
	}

	request := &RestaurantRequest{
		Name:              cell(0),
		Description:       cell(1),
		LowestPrice:       number(2),
		HighestPrice:      number(3),
		PostalCode:        cell(4),
		Address:           cell(5),
		OpeningTime:       cell(6),
		ClosingTime:       cell(7),
		SeatingCapacity:   number(8),
		CategoryIDs:       ids(9),
		RegularHolidayIDs: ids(10),
	}
	return request, fields
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
