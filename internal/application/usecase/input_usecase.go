package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// InputUseCase casos de uso CRUD para insumos. Stock y AvgCost no se tocan por
// esta superficie: los muta únicamente el motor de recepciones.
type InputUseCase struct {
	repo repository.InputRepository
}

// NewInputUseCase construye el caso de uso.
func NewInputUseCase(repo repository.InputRepository) *InputUseCase {
	return &InputUseCase{repo: repo}
}

// Create crea un insumo. Stock y costo promedio inician en 0.
func (uc *InputUseCase) Create(in dto.CreateInputRequest) (*dto.InputResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	input := &entity.Input{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      in.Unit,
		Stock:     decimal.Zero,
		AvgCost:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(input); err != nil {
		return nil, err
	}
	return toInputResponse(input), nil
}

// GetByID obtiene un insumo por ID.
func (uc *InputUseCase) GetByID(id string) (*dto.InputResponse, error) {
	input, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, domain.ErrNotFound
	}
	return toInputResponse(input), nil
}

// List lista insumos con paginación.
func (uc *InputUseCase) List(limit, offset int) ([]dto.InputResponse, error) {
	inputs, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InputResponse, 0, len(inputs))
	for _, i := range inputs {
		out = append(out, *toInputResponse(i))
	}
	return out, nil
}

func toInputResponse(i *entity.Input) *dto.InputResponse {
	return &dto.InputResponse{
		ID:        i.ID,
		Name:      i.Name,
		Unit:      i.Unit,
		Stock:     i.Stock,
		AvgCost:   i.AvgCost,
		CreatedAt: i.CreatedAt,
	}
}
