package catalog

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Column identifiers used by the filters. Aliases match the join skeleton below.
const (
	colPrice    = "p.price"
	colStyle    = "sty.name"
	colBrand    = "b.name"
	colMaterial = "d.material"
	colRoomType = "d.room_type"
)

// texturesColumn folds a product's textures into one jsonb array. It is correlated on
// product_id, so the outer query keeps one row per product whatever the texture count.
const texturesColumn = `COALESCE(
	(SELECT jsonb_agg(jsonb_build_object(
		'texture_id', t.texture_id,
		'name', t.name,
		'texture_file_url', t.texture_file_url,
		'application_area', pt.application_area
	) ORDER BY t.texture_id)
	FROM product_textures pt
	JOIN textures t ON pt.texture_id = t.texture_id
	WHERE pt.product_id = p.product_id),
	'[]'::jsonb
) AS textures`

var productColumns = []string{
	"p.product_id",
	"p.name",
	"p.price",
	"p.description",
	"cat.name AS category",
	"sty.name AS style",
	"b.name AS brand",
}

// Query is an assembled statement with its bind parameters.
type Query struct {
	SQL  string
	Args []interface{}
}

// DoorFilter holds the optional filters of the doors listing. Nil means not provided.
type DoorFilter struct {
	RoomType *string
	Style    *string
	Material *string
	Brand    *string
	MinPrice *float64
	MaxPrice *float64
}

// ProductFilter holds the filters of the per-category product listing.
type ProductFilter struct {
	CategoryName string
	Style        *string
	Brand        *string
	MinPrice     *float64
	MaxPrice     *float64
}

// DoorsQuery assembles the doors listing. String filters are substring, case-insensitive.
func DoorsQuery(f DoorFilter) (Query, error) {
	where := BuildWhere(
		StringFilter(colRoomType, f.RoomType, MatchSubstring),
		StringFilter(colStyle, f.Style, MatchSubstring),
		StringFilter(colMaterial, f.Material, MatchSubstring),
		StringFilter(colBrand, f.Brand, MatchSubstring),
		NumberFilter(colPrice, f.MinPrice, MatchMin),
		NumberFilter(colPrice, f.MaxPrice, MatchMax),
	)
	columns := append(append([]string{}, productColumns...), "d.material", "d.room_type")
	return assemble(doorsTable, columns, where)
}

// ProductsQuery assembles the listing of one category. String filters are exact,
// case-insensitive. Unknown categories fail with ErrUnknownCategory before any SQL is built.
func ProductsQuery(f ProductFilter) (Query, error) {
	table, err := AttributeTable(f.CategoryName)
	if err != nil {
		return Query{}, err
	}
	where := BuildWhere(
		StringFilter(colStyle, f.Style, MatchExact),
		StringFilter(colBrand, f.Brand, MatchExact),
		NumberFilter(colPrice, f.MinPrice, MatchMin),
		NumberFilter(colPrice, f.MaxPrice, MatchMax),
	)
	columns := append(append([]string{}, productColumns...), "to_jsonb(d) - 'product_id' AS attributes")
	return assemble(table, columns, where)
}

// assemble builds the join skeleton around an allow-listed attribute table. Placeholders are
// already numbered by BuildWhere, so the default squirrel placeholder format leaves them as is.
func assemble(table string, columns []string, where Where) (Query, error) {
	query, args, err := sq.Select(columns...).
		Column(texturesColumn).
		From("products p").
		Join(fmt.Sprintf("%s d ON p.product_id = d.product_id", table)).
		LeftJoin("categories cat ON p.category_id = cat.category_id").
		LeftJoin("styles sty ON p.style_id = sty.style_id").
		LeftJoin("brands b ON p.brand_id = b.brand_id").
		Where(where.SQL(), where.Params...).
		ToSql()
	if err != nil {
		return Query{}, fmt.Errorf("catalog: assemble %s query: %w", table, err)
	}
	return Query{SQL: query, Args: args}, nil
}
