package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReplenishUseCase registra reposiciones de stock de forma transaccional.
//
// Regla de consistencia: el asiento en replenishments y el incremento del stock
// del producto van en LA MISMA transacción, y el incremento es un update
// relativo (stock = stock + qty) ejecutado en la fila. Nunca se escribe un
// stock leído en memoria: reposiciones concurrentes sobre el mismo producto
// serializan en el update y no hay lost updates, incluso con varias instancias
// del servidor contra la misma base.
type ReplenishUseCase struct {
	txRunner    TxRunner
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	replRepo    repository.ReplenishmentRepository
}

// NewReplenishUseCase construye el caso de uso. replRepo (fuera de tx) se usa
// solo para lecturas del historial.
func NewReplenishUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	replRepo repository.ReplenishmentRepository,
) *ReplenishUseCase {
	return &ReplenishUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		productRepo: productRepo,
		replRepo:    replRepo,
	}
}

// Replenish valida entrada y referencias, y ejecuta la transacción
// asiento + incremento. Commit o Rollback: sin asiento no hay incremento
// y viceversa.
func (uc *ReplenishUseCase) Replenish(ctx context.Context, userID string, in dto.CreateReplenishmentRequest) (*dto.ReplenishmentResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	rep := &entity.Replenishment{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProductID:     product.ID,
		CategoryID:    product.CategoryID, // denormalizado al momento del asiento
		Quantity:      in.Quantity,
		ReplenishedAt: time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		replRepo repository.ReplenishmentRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := replRepo.Create(rep); err != nil {
			return err
		}
		// Update relativo en la misma tx; si el producto desapareció entre la
		// validación y aquí, IncrementStock devuelve ErrNotFound y todo se revierte.
		return productRepo.IncrementStock(rep.ProductID, rep.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return toReplenishmentResponse(rep), nil
}

// HistoryByProduct devuelve los asientos de un producto (más recientes primero).
func (uc *ReplenishUseCase) HistoryByProduct(productID string) ([]dto.ReplenishmentResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.replRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReplenishmentResponse, 0, len(list))
	for _, rep := range list {
		items = append(items, *toReplenishmentResponse(rep))
	}
	return items, nil
}

// HistoryByUser devuelve los asientos registrados por un usuario (más
// recientes primero).
func (uc *ReplenishUseCase) HistoryByUser(userID string) ([]dto.ReplenishmentResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	list, err := uc.replRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReplenishmentResponse, 0, len(list))
	for _, rep := range list {
		items = append(items, *toReplenishmentResponse(rep))
	}
	return items, nil
}

func toReplenishmentResponse(rep *entity.Replenishment) *dto.ReplenishmentResponse {
	return &dto.ReplenishmentResponse{
		ID:            rep.ID,
		UserID:        rep.UserID,
		ProductID:     rep.ProductID,
		CategoryID:    rep.CategoryID,
		Quantity:      rep.Quantity,
		ReplenishedAt: rep.ReplenishedAt,
	}
}
