package inventory

import (
	"testing"

	"station-request-api-server/internal/mockdata"
	"station-request-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[int]models.InventoryStatus{
		0:  models.InventoryOutOfStock,
		1:  models.InventoryFinishingSoon,
		4:  models.InventoryFinishingSoon,
		5:  models.InventoryAvailable,
		20: models.InventoryAvailable,
	}
	for available, want := range cases {
		assert.Equal(t, want, Classify(models.InventoryRow{Available: available}), available)
	}
}

func TestBuild(t *testing.T) {
	v := Build(mockdata.Inventory(), TabAll, "")
	require.Len(t, v.Rows, 8)
	assert.Equal(t, Overview{Available: 5, FinishingSoon: 1, OutOfStock: 2}, v.Overview)
	assert.Equal(t, 57, v.Totals.Available)
	assert.Equal(t, 365, v.Totals.Total)

	v = Build(mockdata.Inventory(), Tab(models.InventoryOutOfStock), "")
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "Widget A", v.Rows[0].SKU)
	assert.Equal(t, "Panel C", v.Rows[1].SKU)
	assert.Equal(t, 0, v.Totals.Available)
	assert.Equal(t, 8, v.Overview.Available+v.Overview.FinishingSoon+v.Overview.OutOfStock)
}

func TestSearch(t *testing.T) {
	rows := Classified(mockdata.Inventory())
	assert.Len(t, Search(rows, "bracket"), 2)
	assert.Len(t, Search(rows, "type 3"), 1)
	assert.Len(t, Search(rows, ""), 8)
	assert.Empty(t, Search(rows, "gearbox"))
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabAll, tab)

	tab, err = ParseTab("Finishing_Soon")
	require.NoError(t, err)
	assert.Equal(t, Tab(models.InventoryFinishingSoon), tab)

	_, err = ParseTab("reserved")
	assert.ErrorIs(t, err, models.ErrInvalidEnum)
}
