package repos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemFilterEmpty(t *testing.T) {
	where, args := ItemFilter{}.Where()
	require.Equal(t, "1=1", where)
	require.Empty(t, args)
}

func TestItemFilterSearchEscapesWildcards(t *testing.T) {
	where, args := ItemFilter{Search: "100%_Mario"}.Where()
	require.Contains(t, where, "LOWER(i.name) LIKE ?")
	require.Contains(t, where, "LOWER(c.name) LIKE ?")
	require.Len(t, args, 5)
	for _, a := range args {
		require.Equal(t, `%100\%\_mario%`, a)
	}
}

func TestItemFilterCategoryPrecedence(t *testing.T) {
	where, args := ItemFilter{CategoryID: 3, CategoryName: "Games", CategoryLike: "x"}.Where()
	require.Equal(t, "i.category_id = ?", where)
	require.Equal(t, []any{int64(3)}, args)

	where, args = ItemFilter{CategoryName: "Games", CategoryLike: "x"}.Where()
	require.Equal(t, "c.name = ?", where)
	require.Equal(t, []any{"Games"}, args)
}

func TestItemFilterConsoleWinsOverType(t *testing.T) {
	where, args := ItemFilter{ConsoleLike: "N64", ConsoleTypeID: 2, AnyConsole: true}.Where()
	require.Equal(t, `LOWER(co.name) LIKE ? ESCAPE '\'`, where)
	require.Equal(t, []any{"%n64%"}, args)

	where, _ = ItemFilter{AnyConsole: true}.Where()
	require.Equal(t, "i.console_id IS NOT NULL", where)

	where, args = ItemFilter{ConsoleTypeLike: "nin", CategoryName: "Games"}.Where()
	require.Equal(t, `c.name = ? AND LOWER(ct.name) LIKE ? ESCAPE '\'`, where)
	require.Equal(t, []any{"Games", "%nin%"}, args)
}
