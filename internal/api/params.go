package api

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

var errMissingUserID = errors.New("api: user_id is required")

// optionalString keeps "not provided" (nil) apart from "provided but empty".
func optionalString(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

func optionalPrice(q url.Values, key string) (*float64, error) {
	if !q.Has(key) {
		return nil, nil
	}
	price, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("Invalid %s format", key)
	}
	return &price, nil
}

func parsePriceRange(q url.Values) (*float64, *float64, error) {
	minPrice, err := optionalPrice(q, "min_price")
	if err != nil {
		return nil, nil, err
	}
	maxPrice, err := optionalPrice(q, "max_price")
	if err != nil {
		return nil, nil, err
	}
	if err := validatePriceRange(minPrice, maxPrice); err != nil {
		return nil, nil, err
	}
	return minPrice, maxPrice, nil
}

func validatePriceRange(minPrice, maxPrice *float64) error {
	if minPrice != nil && *minPrice < 0 {
		return errors.New("min_price cannot be negative")
	}
	if maxPrice != nil && *maxPrice < 0 {
		return errors.New("max_price cannot be negative")
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return errors.New("min_price cannot exceed max_price")
	}
	return nil
}

// requireUserID reads the caller-supplied identity. A missing value is errMissingUserID;
// a malformed one is a plain validation error.
func requireUserID(q url.Values) (int64, error) {
	if !q.Has("user_id") || q.Get("user_id") == "" {
		return 0, errMissingUserID
	}
	return parseUserID(q.Get("user_id"))
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("Invalid user_id format")
	}
	return id, nil
}
