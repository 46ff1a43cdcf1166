package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Texture is an image/material reference attached to a product.
// ApplicationArea comes from the product_textures association row.
type Texture struct {
	ID              int64   `json:"texture_id"`
	Name            string  `json:"name"`
	TextureFileURL  string  `json:"texture_file_url"`
	ApplicationArea *string `json:"application_area"`
}

// Door is a product from the doors attribute table.
type Door struct {
	ID          int64               `json:"product_id" db:"product_id"`
	Name        string              `json:"name" db:"name"`
	Price       decimal.NullDecimal `json:"price" db:"price"`
	Description *string             `json:"description" db:"description"`
	Category    *string             `json:"category" db:"category"`
	Style       *string             `json:"style" db:"style"`
	Brand       *string             `json:"brand" db:"brand"`
	Material    *string             `json:"material" db:"material"`
	RoomType    *string             `json:"room_type" db:"room_type"`
	Textures    TextureList         `json:"textures" db:"textures"`
}

// Product is a catalog item of any category. Attributes holds the columns of the
// category's attribute table, keyed by column name.
type Product struct {
	ID          int64               `json:"product_id" db:"product_id"`
	Name        string              `json:"name" db:"name"`
	Price       decimal.NullDecimal `json:"price" db:"price"`
	Description *string             `json:"description" db:"description"`
	Category    *string             `json:"category" db:"category"`
	Style       *string             `json:"style" db:"style"`
	Brand       *string             `json:"brand" db:"brand"`
	Attributes  Attributes          `json:"attributes" db:"attributes"`
	Textures    TextureList         `json:"textures" db:"textures"`
}

// TextureList scans the jsonb array produced by the texture aggregation subquery.
// It always marshals as an array, never null.
type TextureList []Texture

// Scan implements sql.Scanner.
func (tl *TextureList) Scan(src interface{}) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("domain: scan textures: %w", err)
	}
	list := TextureList{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("domain: decode textures: %w", err)
		}
	}
	*tl = list
	return nil
}

// MarshalJSON keeps an unset list as [] in responses.
func (tl TextureList) MarshalJSON() ([]byte, error) {
	if tl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Texture(tl))
}

// Attributes is an open mapping of category-specific columns.
type Attributes map[string]interface{}

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src interface{}) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("domain: scan attributes: %w", err)
	}
	attrs := Attributes{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return fmt.Errorf("domain: decode attributes: %w", err)
		}
	}
	*a = attrs
	return nil
}

// MarshalJSON keeps an unset mapping as {} in responses.
func (a Attributes) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]interface{}(a))
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported source type %T", src)
	}
}
