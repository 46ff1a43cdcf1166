package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoorsQuery_Skeleton(t *testing.T) {
	q, err := DoorsQuery(DoorFilter{Style: PtrTo("Modern"), MaxPrice: PtrTo(float64(500))})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(q.SQL, "SELECT p.product_id, p.name, p.price, p.description, "+
		"cat.name AS category, sty.name AS style, b.name AS brand, d.material, d.room_type, COALESCE("))
	assert.Contains(t, q.SQL, "FROM products p JOIN doors d ON p.product_id = d.product_id "+
		"LEFT JOIN categories cat ON p.category_id = cat.category_id "+
		"LEFT JOIN styles sty ON p.style_id = sty.style_id "+
		"LEFT JOIN brands b ON p.brand_id = b.brand_id")
	assert.Contains(t, q.SQL, "WHERE pt.product_id = p.product_id")
	assert.Contains(t, q.SQL, "'[]'::jsonb")
	assert.True(t, strings.HasSuffix(q.SQL, "WHERE p.is_active = TRUE AND sty.name ILIKE $1 AND p.price <= $2"))
	assert.Equal(t, []interface{}{"%Modern%", float64(500)}, q.Args)
}

func TestDoorsQuery_AllFiltersInOrder(t *testing.T) {
	q, err := DoorsQuery(DoorFilter{
		RoomType: PtrTo("kitchen"),
		Style:    PtrTo("Loft"),
		Material: PtrTo("oak"),
		Brand:    PtrTo("Dera"),
		MinPrice: PtrTo(float64(100)),
		MaxPrice: PtrTo(float64(900)),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(q.SQL, "WHERE p.is_active = TRUE AND d.room_type ILIKE $1 AND sty.name ILIKE $2 "+
		"AND d.material ILIKE $3 AND b.name ILIKE $4 AND p.price >= $5 AND p.price <= $6"))
	assert.Equal(t, []interface{}{"%kitchen%", "%Loft%", "%oak%", "%Dera%", float64(100), float64(900)}, q.Args)
}

func TestProductsQuery_ExactMatchAndAttributes(t *testing.T) {
	q, err := ProductsQuery(ProductFilter{CategoryName: "Furniture", Style: PtrTo("Scandi")})
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "to_jsonb(d) - 'product_id' AS attributes")
	assert.Contains(t, q.SQL, "JOIN furniture d ON p.product_id = d.product_id")
	assert.NotContains(t, q.SQL, "d.material")
	assert.True(t, strings.HasSuffix(q.SQL, "WHERE p.is_active = TRUE AND sty.name ILIKE $1"))
	assert.Equal(t, []interface{}{"Scandi"}, q.Args)
}

func TestProductsQuery_UnknownCategory(t *testing.T) {
	q, err := ProductsQuery(ProductFilter{CategoryName: "Unknown", Style: PtrTo("Modern")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
	assert.Empty(t, q.SQL)
	assert.Nil(t, q.Args)
}
