package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/control-stock/internal/application/auth"
	"github.com/jhoicas/control-stock/internal/domain"
	"github.com/jhoicas/control-stock/internal/domain/entity"
	"github.com/jhoicas/control-stock/internal/domain/repository"
	"github.com/jhoicas/control-stock/pkg/logger"
)

// InventoryUseCase operaciones de productos y movimientos. Toda escritura
// múltiple pasa por TxRunner: o se aplica completa o no se aplica.
type InventoryUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	log          *logger.Logger
}

// NewInventoryUseCase construye el caso de uso de inventario.
func NewInventoryUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log,
	}
}

// ProductInput campos editables de un producto.
type ProductInput struct {
	Name            string
	Quantity        int
	MinimumQuantity int
}

// ProductView fila de listado con el estado derivado del stock.
// Status es un cálculo de lectura (OK / LOW_STOCK), nunca se persiste.
type ProductView struct {
	ID              string
	Name            string
	Quantity        int
	MinimumQuantity int
	Status          string
}

// MovementView fila del historial de movimientos para presentación.
type MovementView struct {
	ID          string
	ProductName string
	TypeLabel   string // ENTRADA / SAÍDA
	Quantity    int
	Date        time.Time
	Username    string
}

func validateProductInput(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Quantity < 0 || in.MinimumQuantity < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// RegisterProduct da de alta un producto y registra la entrada inicial por la
// cantidad de arranque, atribuida al usuario de la sesión. Producto y
// movimiento se escriben en una sola transacción: si el movimiento falla, el
// producto no queda persistido. Devuelve el ID del producto creado.
func (uc *InventoryUseCase) RegisterProduct(ctx context.Context, session *auth.Session, in ProductInput) (string, error) {
	if session == nil {
		return "", domain.ErrUnauthorized
	}
	if err := validateProductInput(&in); err != nil {
		return "", err
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Quantity:        in.Quantity,
		MinimumQuantity: in.MinimumQuantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		// Con stock inicial cero no hay entrada que registrar
		// (los movimientos son siempre de cantidad positiva).
		if in.Quantity == 0 {
			return nil
		}
		return movementRepo.Create(&entity.Movement{
			ProductID: product.ID,
			Type:      entity.MovementEntrada,
			Quantity:  in.Quantity,
			Date:      now,
			Username:  session.Username,
		})
	})
	if err != nil {
		return "", err
	}
	uc.log.Info().Str("product", in.Name).Int("quantity", in.Quantity).Msg("producto registrado")
	return product.ID, nil
}

// UpdateProduct sobreescribe nombre, cantidad y mínimo del producto. No genera
// movimiento: es una corrección administrativa, no un evento de stock (misma
// asimetría que el alta y el procesamiento, que sí dejan historial).
func (uc *InventoryUseCase) UpdateProduct(session *auth.Session, id string, in ProductInput) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	if err := validateProductInput(&in); err != nil {
		return err
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	product.Name = in.Name
	product.Quantity = in.Quantity
	product.MinimumQuantity = in.MinimumQuantity
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return err
	}
	uc.log.Info().Str("product", in.Name).Msg("producto actualizado")
	return nil
}

// DeleteProduct elimina el producto y todos sus movimientos como una sola
// unidad atómica (no quedan movimientos huérfanos). La confirmación previa es
// responsabilidad de la capa de presentación; aquí se borra incondicionalmente.
func (uc *InventoryUseCase) DeleteProduct(ctx context.Context, session *auth.Session, id string) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Primero los movimientos, después el producto (FK).
		if err := movementRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado con sus movimientos")
	return nil
}

// ProcessMovement registra una entrada o salida de stock y devuelve la nueva
// cantidad. Una salida mayor que el stock actual falla con ErrInsufficientStock
// antes de escribir nada: la cantidad nunca queda negativa. Actualización de
// stock y registro histórico se escriben en la misma transacción.
func (uc *InventoryUseCase) ProcessMovement(ctx context.Context, session *auth.Session, productID, movementType string, amount int) (int, error) {
	if session == nil {
		return 0, domain.ErrUnauthorized
	}
	if amount <= 0 || !entity.ValidMovementType(movementType) {
		return 0, domain.ErrInvalidInput
	}

	now := time.Now()
	var newQuantity int
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto dentro de la tx (SELECT FOR UPDATE).
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if movementType == entity.MovementSaida && amount > product.Quantity {
			return domain.ErrInsufficientStock
		}
		if movementType == entity.MovementEntrada {
			newQuantity = product.Quantity + amount
		} else {
			newQuantity = product.Quantity - amount
		}
		if err := productRepo.UpdateQuantity(productID, newQuantity); err != nil {
			return err
		}
		return movementRepo.Create(&entity.Movement{
			ProductID: productID,
			Type:      movementType,
			Quantity:  amount,
			Date:      now,
			Username:  session.Username,
		})
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().
		Str("product_id", productID).
		Str("type", movementType).
		Int("amount", amount).
		Int("new_quantity", newQuantity).
		Msg("movimiento procesado")
	return newQuantity, nil
}

// ListProducts devuelve los productos ordenados por nombre con su estado
// derivado: OK si quantity >= minimum, LOW_STOCK si está por debajo.
func (uc *InventoryUseCase) ListProducts() ([]*ProductView, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, &ProductView{
			ID:              p.ID,
			Name:            p.Name,
			Quantity:        p.Quantity,
			MinimumQuantity: p.MinimumQuantity,
			Status:          p.StockStatus(),
		})
	}
	return views, nil
}

// ListMovementHistory devuelve el historial completo, más reciente primero,
// con el nombre del producto y la etiqueta de presentación del tipo.
func (uc *InventoryUseCase) ListMovementHistory() ([]*MovementView, error) {
	records, err := uc.movementRepo.ListHistory()
	if err != nil {
		return nil, err
	}
	views := make([]*MovementView, 0, len(records))
	for _, rec := range records {
		views = append(views, &MovementView{
			ID:          rec.ID,
			ProductName: rec.ProductName,
			TypeLabel:   entity.MovementLabel(rec.Type),
			Quantity:    rec.Quantity,
			Date:        rec.Date,
			Username:    rec.Username,
		})
	}
	return views, nil
}
