package bot

import (
	"testing"

	"cafe-site/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"4.50", 4.5, false},
		{"4,50", 4.5, false},
		{"$6", 6, false},
		{" 7.25 ", 7.25, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePrice(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parsePrice(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parsePrice(%q)", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "parsePrice(%q)", tt.in)
	}
}

func TestParseRating(t *testing.T) {
	for _, in := range []string{"1", "3", " 5 "} {
		_, err := parseRating(in)
		assert.NoError(t, err, in)
	}
	for _, in := range []string{"0", "6", "x", ""} {
		_, err := parseRating(in)
		assert.Error(t, err, in)
	}
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data   string
		action string
		arg    string
		ok     bool
	}{
		{"admin:list:bebida", "list", "bebida", true},
		{"admin:del:1700000000000", "del", "1700000000000", true},
		{"admin:reset:confirm", "reset", "confirm", true},
		{"admin:export", "export", "", true},
		{"admin:", "", "", false},
		{"other:list", "", "", false},
	}
	for _, tt := range tests {
		action, arg, ok := parseCallback(tt.data)
		assert.Equal(t, tt.ok, ok, tt.data)
		assert.Equal(t, tt.action, action, tt.data)
		assert.Equal(t, tt.arg, arg, tt.data)
	}
}

func TestFormatMenuList(t *testing.T) {
	items := []models.MenuItem{
		{ID: "1", Name: "Espresso", Price: 4.5, Category: models.CategoryDrink,
			Sizes: []models.Size{{Name: "Simple", Price: 4.5}, {Name: "Doble", Price: 6}}, Featured: true},
		{ID: "2", Name: "Té", Price: 3, Category: models.CategoryDrink},
	}
	out := formatMenuList(models.CategoryDrink, items)
	assert.Contains(t, out, "Bebida")
	assert.Contains(t, out, "• Espresso — $4.50 (Simple $4.50, Doble $6.00) ⭐\n")
	assert.Contains(t, out, "• Té — $3.00\n")
}

func TestFormatInfo(t *testing.T) {
	out := formatInfo(models.DefaultCafeData().Info)
	assert.Contains(t, out, "Café Aroma")
	assert.Contains(t, out, "WhatsApp: 927564707")
	assert.Contains(t, out, "@cafearoma")
}

func TestCheckLogin(t *testing.T) {
	a := &AdminBot{login: "secret"}
	assert.True(t, a.checkLogin(42, "secret"))
	assert.False(t, a.checkLogin(42, "Secret"))
	assert.False(t, a.checkLogin(42, ""))

	a.adminID = 7
	assert.False(t, a.checkLogin(42, "secret"))
	assert.True(t, a.checkLogin(7, "secret"))
}

func TestAdminStateLifecycle(t *testing.T) {
	a := &AdminBot{
		login:    "secret",
		state:    make(map[int64]*adminState),
		loggedIn: make(map[int64]bool),
	}
	a.setLoggedIn(1, true)
	a.setState(1, &adminState{Step: stepMenuName, Category: models.CategoryDessert})
	require.True(t, a.isLoggedIn(1))
	require.NotNil(t, a.getState(1))

	a.clearState(1)
	assert.Nil(t, a.getState(1))
	assert.True(t, a.isLoggedIn(1))

	a.setState(1, &adminState{Step: stepImport})
	a.setLoggedIn(1, false)
	assert.False(t, a.isLoggedIn(1))
	assert.Nil(t, a.getState(1))
}

func TestDeleteConfirmationRoundTrip(t *testing.T) {
	for _, action := range []string{"del", "deltest", "delimg"} {
		// First tap only carries the id.
		gotAction, arg, ok := parseCallback(callbackPrefix + action + ":1700000000000")
		require.True(t, ok)
		require.Equal(t, action, gotAction)
		id, confirmed := splitConfirm(arg)
		assert.Equal(t, "1700000000000", id)
		assert.False(t, confirmed, action)

		// The "yes" button of the confirmation keyboard deletes.
		kb := confirmKeyboard(action, id)
		require.Len(t, kb.InlineKeyboard, 1)
		require.Len(t, kb.InlineKeyboard[0], 2)
		yes := kb.InlineKeyboard[0][0].CallbackData
		require.NotNil(t, yes)
		gotAction, arg, ok = parseCallback(*yes)
		require.True(t, ok)
		assert.Equal(t, action, gotAction)
		id, confirmed = splitConfirm(arg)
		assert.Equal(t, "1700000000000", id)
		assert.True(t, confirmed, action)

		no := kb.InlineKeyboard[0][1].CallbackData
		require.NotNil(t, no)
		assert.Equal(t, callbackPrefix+"back", *no)
		assert.LessOrEqual(t, len(*yes), 64)
	}
}

func TestSetInfoField(t *testing.T) {
	info := models.DefaultCafeData().Info
	for _, f := range infoFields {
		require.NoError(t, setInfoField(&info, f, "x-"+f), f)
	}
	assert.Equal(t, "x-name", info.Name)
	assert.Equal(t, "x-hours", info.Hours)
	assert.Equal(t, "x-instagram", info.Social.Instagram)
	assert.Equal(t, "x-facebook", info.Social.Facebook)
	assert.Error(t, setInfoField(&info, "menu", "x"))
}

func TestSetMenuField(t *testing.T) {
	item := models.DefaultCafeData().Menu[0]

	require.NoError(t, setMenuField(&item, "price", "5,25"))
	assert.InDelta(t, 5.25, item.Price, 1e-9)
	assert.Error(t, setMenuField(&item, "price", "gratis"))
	assert.InDelta(t, 5.25, item.Price, 1e-9)

	require.NoError(t, setMenuField(&item, "name", "Ristretto"))
	assert.Equal(t, "Ristretto", item.Name)

	require.NoError(t, setMenuField(&item, "badge", "-"))
	assert.Empty(t, item.Badge)

	assert.Error(t, setMenuField(&item, "category", "postre"))
	assert.Equal(t, models.CategoryDrink, item.Category)
}

func TestEditCallbacksFitTelegramLimit(t *testing.T) {
	for _, f := range menuFields {
		data := callbackPrefix + "editf:1700000000000:" + f
		assert.LessOrEqual(t, len(data), 64, data)
		action, arg, ok := parseCallback(data)
		require.True(t, ok)
		assert.Equal(t, "editf", action)
		assert.Equal(t, "1700000000000:"+f, arg)
	}
}
