package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"interior-catalog-service/internal/catalog"
	"interior-catalog-service/internal/domain"
	"interior-catalog-service/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCHandler implements CatalogServiceServer.
type GRPCHandler struct {
	UnimplementedCatalogServiceServer

	catalogStore store.CatalogStorer
	filterStore  store.FilterStorer
	validate     *validator.Validate
	logger       logrus.FieldLogger
}

// NewGRPCHandler creates a new GRPCHandler.
func NewGRPCHandler(cs store.CatalogStorer, fs store.FilterStorer, logger logrus.FieldLogger) *GRPCHandler {
	return &GRPCHandler{
		catalogStore: cs,
		filterStore:  fs,
		validate:     validator.New(),
		logger:       logger,
	}
}

// --- Helper: Error Mapping ---
func (s *GRPCHandler) mapStoreErrorToGrpcStatus(err error, resourceName string, resourceID interface{}) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, catalog.ErrUnknownCategory):
		return status.Errorf(codes.NotFound, "%s %v not found", resourceName, resourceID)
	case errors.Is(err, store.ErrUserNotFound):
		return status.Errorf(codes.NotFound, "User with ID %v not found", resourceID)
	default:
		s.logger.WithError(err).WithFields(logrus.Fields{
			"resource": resourceName,
			"id":       resourceID,
		}).Error("gRPC store operation failed")
		return status.Errorf(codes.Internal, "Failed to process %s request", resourceName)
	}
}

// --- Helpers: Struct field access ---

func structString(req *structpb.Struct, key string) (*string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_StringValue:
		s := kind.StringValue
		return &s, nil
	default:
		return nil, fmt.Errorf("%s must be a string", key)
	}
}

// structNumber accepts a JSON number or a numeric string.
func structNumber(req *structpb.Struct, key string) (*float64, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, nil
	}
	var n float64
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		n = kind.NumberValue
	case *structpb.Value_StringValue:
		parsed, err := strconv.ParseFloat(kind.StringValue, 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid %s format", key)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("Invalid %s format", key)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("Invalid %s format", key)
	}
	return &n, nil
}

func structPriceRange(req *structpb.Struct) (*float64, *float64, error) {
	minPrice, err := structNumber(req, "min_price")
	if err != nil {
		return nil, nil, err
	}
	maxPrice, err := structNumber(req, "max_price")
	if err != nil {
		return nil, nil, err
	}
	if err := validatePriceRange(minPrice, maxPrice); err != nil {
		return nil, nil, err
	}
	return minPrice, maxPrice, nil
}

func structUserID(req *structpb.Struct) (int64, error) {
	v, ok := req.GetFields()["user_id"]
	if !ok {
		return 0, errMissingUserID
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return 0, errMissingUserID
	case *structpb.Value_StringValue:
		if kind.StringValue == "" {
			return 0, errMissingUserID
		}
		return parseUserID(kind.StringValue)
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || n <= 0 || n > math.MaxInt64 {
			return 0, errors.New("Invalid user_id format")
		}
		return int64(n), nil
	default:
		return 0, errors.New("Invalid user_id format")
	}
}

// toListValue converts rows through their JSON form so gRPC clients see the same
// field names and value encodings as HTTP clients.
func toListValue(rows interface{}) (*structpb.ListValue, error) {
	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	out := &structpb.ListValue{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Catalog gRPC Methods Implementation ---

func (s *GRPCHandler) ListDoors(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	s.logger.WithField("fields", len(req.GetFields())).Info("Received gRPC ListDoors request")

	minPrice, maxPrice, err := structPriceRange(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	filter := catalog.DoorFilter{MinPrice: minPrice, MaxPrice: maxPrice}
	for key, dst := range map[string]**string{
		"room_type": &filter.RoomType,
		"style":     &filter.Style,
		"material":  &filter.Material,
		"brand":     &filter.Brand,
	} {
		if *dst, err = structString(req, key); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	doors, err := s.catalogStore.ListDoors(ctx, filter)
	if err != nil {
		return nil, s.mapStoreErrorToGrpcStatus(err, "Doors", "listing")
	}
	if doors == nil {
		doors = []domain.Door{}
	}

	out, err := toListValue(doors)
	if err != nil {
		s.logger.WithError(err).Error("Failed to convert doors to ListValue")
		return nil, status.Errorf(codes.Internal, "Failed to process doors data")
	}
	s.logger.WithField("count", len(doors)).Info("Returning doors")
	return out, nil
}

func (s *GRPCHandler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	category, err := structString(req, "category_name")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if category == nil {
		return nil, status.Errorf(codes.InvalidArgument, "category_name is required")
	}
	s.logger.WithField("category", *category).Info("Received gRPC ListProducts request")

	minPrice, maxPrice, err := structPriceRange(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	filter := catalog.ProductFilter{CategoryName: *category, MinPrice: minPrice, MaxPrice: maxPrice}
	if filter.Style, err = structString(req, "style"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if filter.Brand, err = structString(req, "brand"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	products, err := s.catalogStore.ListProducts(ctx, filter)
	if err != nil {
		return nil, s.mapStoreErrorToGrpcStatus(err, "Category", *category)
	}
	if products == nil {
		products = []domain.Product{}
	}

	out, err := toListValue(products)
	if err != nil {
		s.logger.WithError(err).Error("Failed to convert products to ListValue")
		return nil, status.Errorf(codes.Internal, "Failed to process products data")
	}
	s.logger.WithFields(logrus.Fields{"category": *category, "count": len(products)}).Info("Returning products")
	return out, nil
}

// --- Saved Filter gRPC Methods Implementation ---

func (s *GRPCHandler) SaveFilter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := structUserID(req)
	if err != nil {
		if errors.Is(err, errMissingUserID) {
			return nil, status.Errorf(codes.Unauthenticated, "User ID is required")
		}
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s.logger.WithField("user_id", userID).Info("Received gRPC SaveFilter request")

	input := SaveFilterInput{}
	if name, err := structString(req, "name"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if name != nil {
		input.Name = *name
	}
	if filters := req.GetFields()["filters"].GetStructValue(); filters != nil {
		input.Filters = filters.AsMap()
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "Validation failed: %v", err)
	}

	filter := &domain.SavedFilter{
		UserID:  userID,
		Name:    input.Name,
		Filters: domain.FilterPayload(input.Filters),
	}
	if err := s.filterStore.SaveFilter(ctx, filter); err != nil {
		return nil, s.mapStoreErrorToGrpcStatus(err, "Filter", userID)
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"status":      "saved",
		"filter_name": filter.Name,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Failed to build response")
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "name": filter.Name}).Info("Saved filter")
	return out, nil
}
