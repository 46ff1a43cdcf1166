package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func PtrTo[T any](v T) *T {
	return &v
}

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

func TestBuildWhere_StyleAndMaxPrice(t *testing.T) {
	where := BuildWhere(
		StringFilter(colRoomType, nil, MatchSubstring),
		StringFilter(colStyle, PtrTo("Modern"), MatchSubstring),
		StringFilter(colMaterial, nil, MatchSubstring),
		StringFilter(colBrand, nil, MatchSubstring),
		NumberFilter(colPrice, nil, MatchMin),
		NumberFilter(colPrice, PtrTo(float64(500)), MatchMax),
	)

	assert.Equal(t, []string{"p.is_active = TRUE", "sty.name ILIKE $1", "p.price <= $2"}, where.Conditions)
	assert.Equal(t, []interface{}{"%Modern%", float64(500)}, where.Params)
	assert.Equal(t, "p.is_active = TRUE AND sty.name ILIKE $1 AND p.price <= $2", where.SQL())
}

func TestBuildWhere_NoFilters(t *testing.T) {
	where := BuildWhere(
		StringFilter(colStyle, nil, MatchSubstring),
		NumberFilter(colPrice, nil, MatchMax),
	)

	assert.Equal(t, []string{"p.is_active = TRUE"}, where.Conditions)
	assert.Empty(t, where.Params)
	assert.Equal(t, "p.is_active = TRUE", where.SQL())
}

func TestBuildWhere_ContiguousPlaceholdersForEverySubset(t *testing.T) {
	columns := []string{colRoomType, colStyle, colMaterial, colBrand}

	for mask := 0; mask < 1<<6; mask++ {
		t.Run(fmt.Sprintf("mask_%06b", mask), func(t *testing.T) {
			var filters []Filter
			present := 0
			for i, col := range columns {
				var v *string
				if mask&(1<<i) != 0 {
					v = PtrTo("x")
					present++
				}
				filters = append(filters, StringFilter(col, v, MatchSubstring))
			}
			var minPrice, maxPrice *float64
			if mask&(1<<4) != 0 {
				minPrice = PtrTo(float64(10))
				present++
			}
			if mask&(1<<5) != 0 {
				maxPrice = PtrTo(float64(20))
				present++
			}
			filters = append(filters, NumberFilter(colPrice, minPrice, MatchMin), NumberFilter(colPrice, maxPrice, MatchMax))

			where := BuildWhere(filters...)

			require.Len(t, where.Params, present)
			require.Len(t, where.Conditions, present+1)
			assert.Equal(t, activeCondition, where.Conditions[0])
			for i, cond := range where.Conditions[1:] {
				m := placeholderRe.FindAllStringSubmatch(cond, -1)
				require.Len(t, m, 1, "each condition carries exactly one placeholder")
				assert.Equal(t, strconv.Itoa(i+1), m[0][1])
			}
		})
	}
}

func TestBuildWhere_EmptyStringIsProvided(t *testing.T) {
	where := BuildWhere(StringFilter(colBrand, PtrTo(""), MatchExact))

	assert.Equal(t, []string{"p.is_active = TRUE", "b.name ILIKE $1"}, where.Conditions)
	assert.Equal(t, []interface{}{""}, where.Params)
}

func TestBuildWhere_ExactModeEscapesWildcards(t *testing.T) {
	where := BuildWhere(StringFilter(colStyle, PtrTo("Art_Deco 100%"), MatchExact))

	assert.Equal(t, []interface{}{`Art\_Deco 100\%`}, where.Params)
}

func TestBuildWhere_InjectionStaysInParams(t *testing.T) {
	hostile := "x' OR 1=1; DROP TABLE products; --"
	where := BuildWhere(StringFilter(colMaterial, PtrTo(hostile), MatchSubstring))

	assert.Equal(t, "p.is_active = TRUE AND d.material ILIKE $1", where.SQL())
	assert.NotContains(t, where.SQL(), "DROP")
	assert.Equal(t, []interface{}{"%" + hostile + "%"}, where.Params)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
	assert.Equal(t, "Modern", escapeLike("Modern"))
}
