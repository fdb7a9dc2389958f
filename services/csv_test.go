package services

import (
	"strings"
	"testing"

	"menuboard-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportQuotesEveryField(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner, restaurant := seedOwner(t, db, "owner@test.com")

	_, err := svc.Create(CreateItemInput{
		RestaurantID: restaurant.ID,
		Name:         `The "Big" One`,
		Description:  "Burger, fries",
		Price:        "9.99",
		CourseTags:   []string{"Mains", "Popular"},
		Allergens:    models.Allergens{Gluten: true, Milk: true},
	}, owner.ID)
	require.NoError(t, err)

	out, err := svc.ExportCSV(restaurant.ID, owner.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Name","Description","Price","Course Type","Custom Tags","Allergens"`, lines[0])
	assert.Equal(t, `"The ""Big"" One","Burger, fries","9.99","Mains","Popular","milk;gluten"`, lines[1])
}

func TestExportOwnershipConflated(t *testing.T) {
	svc, db, _ := newTestService(t)
	_, restaurant := seedOwner(t, db, "owner@test.com")
	intruder, _ := seedOwner(t, db, "intruder@test.com")

	_, err := svc.ExportCSV(restaurant.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ExportCSV(9999, intruder.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportRoundTrip(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner, restaurant := seedOwner(t, db, "src@test.com")
	owner2, target := seedOwner(t, db, "dst@test.com")

	_, err := svc.Create(CreateItemInput{
		RestaurantID: restaurant.ID,
		Name:         "Pad Thai",
		Description:  "Rice noodles",
		Price:        "11.00",
		CourseTags:   []string{"Mains", "Thai"},
		Allergens:    models.Allergens{Peanuts: true, Soy: true},
		Status:       models.StatusLive,
	}, owner.ID)
	require.NoError(t, err)
	_, err = svc.Create(CreateItemInput{
		RestaurantID: restaurant.ID,
		Name:         "Spring Rolls",
		Description:  "Crispy",
		CourseTags:   []string{"Starters"},
	}, owner.ID)
	require.NoError(t, err)

	out, err := svc.ExportCSV(restaurant.ID, owner.ID)
	require.NoError(t, err)

	res, err := svc.ImportCSV(target.ID, strings.NewReader(out), owner2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 0, res.Failed)

	items, err := svc.List(target.ID, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Pad Thai", items[0].Name)
	assert.Equal(t, "Rice noodles", items[0].Description)
	assert.Equal(t, "11.00", items[0].Price)
	assert.Equal(t, models.StringList{"Mains", "Thai"}, items[0].CourseTags)
	assert.True(t, items[0].Allergens.Peanuts)
	assert.True(t, items[0].Allergens.Soy)
	assert.False(t, items[0].Allergens.Milk)
	assert.Equal(t, models.StringList{"Starters"}, items[1].CourseTags)
}

func TestImportPartialFailure(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner, restaurant := seedOwner(t, db, "owner@test.com")

	csvText := `"Name","Description","Price","Course Type","Custom Tags","Allergens"
"One","first","1.00","Mains","","milk"
"Two","second","2.00","Mains","",""
"Three","broken row","3.00"
"Four","fourth","4.00","Sides","",""
"Five","fifth","5.00","Sides","","gluten;fish"
`
	res, err := svc.ImportCSV(restaurant.ID, strings.NewReader(csvText), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Success)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 4, res.Errors[0].Row)

	items, err := svc.List(restaurant.ID, nil)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestImportHeaderValidation(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner, restaurant := seedOwner(t, db, "owner@test.com")

	// header names are matched case-insensitively
	csvText := "name,DESCRIPTION,Price,course type,Custom Tags,allergens\nDish,desc,1.00,Mains,,\n"
	res, err := svc.ImportCSV(restaurant.ID, strings.NewReader(csvText), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)

	// a missing expected column rejects the whole import
	bad := "Name,Description,Price\nDish,desc,1.00\n"
	_, err = svc.ImportCSV(restaurant.ID, strings.NewReader(bad), owner.ID)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file", ve.Field)
}

func TestImportPriceCurrencyStripped(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner, restaurant := seedOwner(t, db, "owner@test.com")

	csvText := "Name,Description,Price,Course Type,Custom Tags,Allergens\n" +
		"A,a,$4.50,Mains,,\n" +
		"B,b,£3.20,Mains,,\n" +
		"C,c,€2.10,Mains,,\n"
	res, err := svc.ImportCSV(restaurant.ID, strings.NewReader(csvText), owner.ID)
	require.NoError(t, err)
	require.Equal(t, 3, res.Success)

	items, err := svc.List(restaurant.ID, nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "4.50", items[0].Price)
	assert.Equal(t, "3.20", items[1].Price)
	assert.Equal(t, "2.10", items[2].Price)
}

func TestImportRowsSkipValidation(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner, restaurant := seedOwner(t, db, "owner@test.com")

	// row with an empty description fails the same validation as the API
	csvText := "Name,Description,Price,Course Type,Custom Tags,Allergens\n" +
		"Good,fine,1.00,Mains,,\n" +
		"Bad,,2.00,Mains,,\n"
	res, err := svc.ImportCSV(restaurant.ID, strings.NewReader(csvText), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 1, res.Failed)
}
