package restaurant_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()

	xl := excelize.NewFile()
	defer xl.Close()

	sheet := xl.GetSheetName(0)
	header := make([]any, 0, len(restaurant.ImportColumns))
	for _, c := range restaurant.ImportColumns {
		header = append(header, c)
	}
	require.NoError(t, xl.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, xl.SetSheetRow(sheet, cell, &row))
	}

	buf, err := xl.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImport(t *testing.T) {
	// Given: two valid rows, one with inverted prices and one with a bad postal code
	env := setupTestEnvironment(t, sharedContext.Principal{})
	washoku := testutil.CreateCategory(t, env.db, "和食")

	content := workbook(t,
		[]any{"味仙", "台湾ラーメン", "800", "2000", "4600011", "名古屋市中区大須", "17:00", "23:00", "60", "", ""},
		[]any{"逆転価格", "説明", "5000", "1000", "4600011", "名古屋市中区", "10:00", "20:00", "10", "", ""},
		[]any{"郵便番号", "説明", "1000", "2000", "460-0011", "名古屋市中区", "10:00", "20:00", "10", "", ""},
		[]any{"あつた蓬莱軒", "ひつまぶし", "3000", "7000", "4560043", "名古屋市熱田区", "11:30", "20:30", "80", "1", ""},
	)

	// When
	recorder := testutil.ExecuteMultipart(t, env.router, http.MethodPost, "/admin/restaurants/import", nil,
		testutil.MultipartFile{Field: "file", Filename: "restaurants.xlsx", Content: content},
	)

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	var response restaurant.ImportResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, 2, response.Imported)
	require.Len(t, response.Skipped, 2)
	assert.Equal(t, 3, response.Skipped[0].Row)
	assert.Contains(t, response.Skipped[0].Errors, "lowest_price")
	assert.Equal(t, 4, response.Skipped[1].Row)
	assert.Contains(t, response.Skipped[1].Errors, "postal_code")

	assert.Equal(t, int64(2), testutil.CountRows(t, env.db, "restaurants", ""))
	assert.Equal(t, int64(1), testutil.CountRows(t, env.db, "category_restaurant", "category_id = ?", washoku.ID))
}

func TestImport_UnknownCategorySkipsRow(t *testing.T) {
	env := setupTestEnvironment(t, sharedContext.Principal{})

	content := workbook(t,
		[]any{"味仙", "台湾ラーメン", "800", "2000", "4600011", "名古屋市中区大須", "17:00", "23:00", "60", "42", ""},
	)

	recorder := testutil.ExecuteMultipart(t, env.router, http.MethodPost, "/admin/restaurants/import", nil,
		testutil.MultipartFile{Field: "file", Filename: "restaurants.xlsx", Content: content},
	)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response restaurant.ImportResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, 0, response.Imported)
	require.Len(t, response.Skipped, 1)
	assert.Contains(t, response.Skipped[0].Errors, "category_ids")
}

func TestImport_InvalidFile(t *testing.T) {
	env := setupTestEnvironment(t, sharedContext.Principal{})

	recorder := testutil.ExecuteMultipart(t, env.router, http.MethodPost, "/admin/restaurants/import", nil,
		testutil.MultipartFile{Field: "file", Filename: "restaurants.xlsx", Content: bytes.Repeat([]byte("x"), 64)},
	)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "RESTAURANT-002")

	// header only
	recorder = testutil.ExecuteMultipart(t, env.router, http.MethodPost, "/admin/restaurants/import", nil,
		testutil.MultipartFile{Field: "file", Filename: "restaurants.xlsx", Content: workbook(t)},
	)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// no file
	recorder = testutil.ExecuteMultipart(t, env.router, http.MethodPost, "/admin/restaurants/import", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "file")
}
