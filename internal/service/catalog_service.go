package service

import (
	"context"
	"strings"

	"shopstock/internal/domain"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/shopspring/decimal"
)

type CreateUnitRequest struct {
	Name             string `json:"name" binding:"required"`
	Symbol           string `json:"symbol" binding:"required"`
	IsCountable      bool   `json:"is_countable"`
	ConversionToBase string `json:"conversion_to_base" binding:"required"`
}

type CreateCategoryRequest struct {
	Name               string   `json:"name" binding:"required"`
	BaseUnitID         string   `json:"base_unit_id" binding:"required"`
	TransactionUnitIDs []string `json:"transaction_unit_ids"`
}

type CreateSubCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

type CatalogService interface {
	CreateUnit(ctx context.Context, req CreateUnitRequest) (*model.Unit, error)
	ListUnits(ctx context.Context) ([]model.Unit, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateTransactionUnits(ctx context.Context, categoryID string, unitIDs []string) (*model.Category, error)

	CreateSubCategory(ctx context.Context, req CreateSubCategoryRequest) (*model.SubCategory, error)
	ListSubCategories(ctx context.Context, categoryID string) ([]model.SubCategory, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) CreateUnit(ctx context.Context, req CreateUnitRequest) (*model.Unit, error) {
	conversion, err := decimal.NewFromString(req.ConversionToBase)
	if err != nil || !conversion.IsPositive() {
		return nil, domain.ErrInvalidConversion
	}

	unit := &model.Unit{
		Name:             strings.TrimSpace(req.Name),
		Symbol:           strings.TrimSpace(req.Symbol),
		IsCountable:      req.IsCountable,
		ConversionToBase: conversion,
	}
	if err := s.catalogRepo.CreateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *catalogService) ListUnits(ctx context.Context) ([]model.Unit, error) {
	return s.catalogRepo.ListUnits(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	baseUnit, err := s.catalogRepo.FindUnitByID(ctx, mustParse(req.BaseUnitID))
	if err != nil {
		return nil, notFoundOr(err, "base unit")
	}

	units, err := s.resolveUnits(ctx, req.TransactionUnitIDs)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	category := &model.Category{
		Name:             name,
		Slug:             slugify(name),
		BaseUnitID:       baseUnit.ID,
		TransactionUnits: units,
	}
	if err := s.catalogRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return s.catalogRepo.FindCategoryByID(ctx, category.ID)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.catalogRepo.ListCategories(ctx)
}

func (s *catalogService) UpdateTransactionUnits(ctx context.Context, categoryID string, unitIDs []string) (*model.Category, error) {
	category, err := s.catalogRepo.FindCategoryByID(ctx, mustParse(categoryID))
	if err != nil {
		return nil, notFoundOr(err, "category")
	}

	units, err := s.resolveUnits(ctx, unitIDs)
	if err != nil {
		return nil, err
	}

	if err := s.catalogRepo.ReplaceTransactionUnits(ctx, category, units); err != nil {
		return nil, err
	}
	return s.catalogRepo.FindCategoryByID(ctx, category.ID)
}

func (s *catalogService) CreateSubCategory(ctx context.Context, req CreateSubCategoryRequest) (*model.SubCategory, error) {
	category, err := s.catalogRepo.FindCategoryByID(ctx, mustParse(req.CategoryID))
	if err != nil {
		return nil, notFoundOr(err, "category")
	}

	sub := &model.SubCategory{
		CategoryID: category.ID,
		Name:       strings.TrimSpace(req.Name),
	}
	if err := s.catalogRepo.CreateSubCategory(ctx, sub); err != nil {
		return nil, err
	}
	return s.catalogRepo.FindSubCategoryByID(ctx, sub.ID)
}

func (s *catalogService) ListSubCategories(ctx context.Context, categoryID string) ([]model.SubCategory, error) {
	if categoryID == "" {
		return s.catalogRepo.ListSubCategories(ctx, nil)
	}
	id := mustParse(categoryID)
	return s.catalogRepo.ListSubCategories(ctx, &id)
}

func (s *catalogService) resolveUnits(ctx context.Context, unitIDs []string) ([]model.Unit, error) {
	units := make([]model.Unit, 0, len(unitIDs))
	for _, raw := range unitIDs {
		unit, err := s.catalogRepo.FindUnitByID(ctx, mustParse(raw))
		if err != nil {
			return nil, notFoundOr(err, "transaction unit")
		}
		units = append(units, *unit)
	}
	return units, nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
