package query

import (
	"testing"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *models.Collection {
	return models.NewCollection(
		&models.User{ID: 1, Surname: "Smith", Name: "Bob", Login: "bob", Password: "secret1", Role: models.RoleAdmin},
		&models.User{ID: 2, Surname: "Doe", Name: "Ann", Login: "ann", Password: "qwerty", Status: models.StatusInactive},
		&models.User{ID: 3, Surname: "Smith", Name: "Carl", Login: "carl", Password: "pa55word"},
		&models.User{ID: 12, Surname: "adams", Name: "Dora", Login: "dora", Password: "letmein"},
	)
}

func logins(users []*models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Login
	}
	return out
}

func TestParseField(t *testing.T) {
	f, err := ParseField("surname")
	require.NoError(t, err)
	assert.Equal(t, FieldSurname, f)

	_, err = ParseField("password")
	require.Error(t, err)
}

func TestSortBy_AscendingIsStableAndByteWise(t *testing.T) {
	c := sample()
	SortBy(c, FieldSurname, true)

	// Upper case sorts before lower case; the two Smiths keep their order.
	assert.Equal(t, []string{"ann", "bob", "carl", "dora"}, logins(c.Users))
}

func TestSortBy_DescendingKeepsTiesInOrder(t *testing.T) {
	c := sample()
	SortBy(c, FieldSurname, false)

	assert.Equal(t, []string{"dora", "bob", "carl", "ann"}, logins(c.Users))
}

func TestSortBy_Idempotent(t *testing.T) {
	for _, f := range Fields {
		for _, asc := range []bool{true, false} {
			c := sample()
			SortBy(c, f, asc)
			once := logins(c.Users)
			SortBy(c, f, asc)
			assert.Equal(t, once, logins(c.Users), "field=%s asc=%v", f, asc)
		}
	}
}

func TestSortBy_ByLoginAndName(t *testing.T) {
	c := sample()
	SortBy(c, FieldLogin, true)
	assert.Equal(t, []string{"ann", "bob", "carl", "dora"}, logins(c.Users))

	SortBy(c, FieldName, false)
	assert.Equal(t, []string{"dora", "carl", "bob", "ann"}, logins(c.Users))
}

func TestFilterByStatus(t *testing.T) {
	c := sample()
	assert.Equal(t, []string{"ann"}, logins(FilterByStatus(c, models.StatusInactive)))
	assert.Equal(t, []string{"bob", "carl", "dora"}, logins(FilterByStatus(c, models.StatusActive)))
}

func TestFilterByRole(t *testing.T) {
	c := sample()
	assert.Equal(t, []string{"bob"}, logins(FilterByRole(c, models.RoleAdmin)))

	empty := FilterByRole(models.NewCollection(), models.RoleAdmin)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSearch(t *testing.T) {
	c := sample()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query matches all", query: "", want: []string{"bob", "ann", "carl", "dora"}},
		{name: "surname", query: "Smith", want: []string{"bob", "carl"}},
		{name: "case sensitive", query: "smith", want: []string{}},
		{name: "id text", query: "12", want: []string{"dora"}},
		{name: "digit in id and password", query: "1", want: []string{"bob", "dora"}},
		{name: "password", query: "55", want: []string{"carl"}},
		{name: "role label", query: "admin", want: []string{"bob"}},
		{name: "status label", query: "inactive", want: []string{"ann"}},
		{name: "multi-field match counted once", query: "a", want: []string{"bob", "ann", "carl", "dora"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, logins(Search(c, tc.query)))
		})
	}
}

func TestSearch_DoesNotReorderCollection(t *testing.T) {
	c := sample()
	before := logins(c.Users)
	_ = Search(c, "o")
	_ = FilterByRole(c, models.RoleStandard)
	assert.Equal(t, before, logins(c.Users))
}
