package repos

import "strings"

// ItemFilter is the structured predicate behind catalog listings. Within the
// category and console groups only the first set field applies.
type ItemFilter struct {
	Search string

	CategoryID   int64
	CategoryName string // exact
	CategoryLike string

	ConsoleID       int64
	ConsoleLike     string
	ConsoleTypeID   int64
	ConsoleTypeLike string
	AnyConsole      bool
}

// Where renders the filter as a SQL condition over the item detail join
// (aliases i, c, co, ct). It always returns a usable condition.
func (f ItemFilter) Where() (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		p := likePattern(f.Search)
		conds = append(conds, `(LOWER(i.name) LIKE ? ESCAPE '\'
    OR LOWER(COALESCE(i.description,'')) LIKE ? ESCAPE '\'
    OR LOWER(co.name) LIKE ? ESCAPE '\'
    OR LOWER(ct.name) LIKE ? ESCAPE '\'
    OR LOWER(c.name) LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p, p, p)
	}

	switch {
	case f.CategoryID > 0:
		conds = append(conds, `i.category_id = ?`)
		args = append(args, f.CategoryID)
	case f.CategoryName != "":
		conds = append(conds, `c.name = ?`)
		args = append(args, f.CategoryName)
	case f.CategoryLike != "":
		conds = append(conds, `LOWER(c.name) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.CategoryLike))
	}

	switch {
	case f.ConsoleID > 0:
		conds = append(conds, `i.console_id = ?`)
		args = append(args, f.ConsoleID)
	case f.ConsoleLike != "":
		conds = append(conds, `LOWER(co.name) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.ConsoleLike))
	case f.ConsoleTypeID > 0:
		conds = append(conds, `co.console_type_id = ?`)
		args = append(args, f.ConsoleTypeID)
	case f.ConsoleTypeLike != "":
		conds = append(conds, `LOWER(ct.name) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.ConsoleTypeLike))
	case f.AnyConsole:
		conds = append(conds, `i.console_id IS NOT NULL`)
	}

	if len(conds) == 0 {
		return "1=1", nil
	}
	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a lower-cased substring pattern with wildcards escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
