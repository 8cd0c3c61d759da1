package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// SupplyInput datos ya validados de un suministro.
type SupplyInput struct {
	Name          string
	Reference     string
	Manufacturer  string
	Description   string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Quantity      int
}

// SupplyResult repuesto resultante, si se creó y el movimiento de entrada registrado.
type SupplyResult struct {
	Part     *entity.Part
	Created  bool
	Movement *entity.StockMovement
}

// UseCase catálogo de repuestos.
type UseCase struct {
	txRunner inventory.TxRunner
	partRepo repository.PartRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner inventory.TxRunner, partRepo repository.PartRepository) *UseCase {
	return &UseCase{txRunner: txRunner, partRepo: partRepo}
}

// NormalizeKey recorta y normaliza a NFC un componente de la identidad (nombre, referencia).
func NormalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// UpsertPartOnSupply suma la cantidad al repuesto (Name, Reference) o lo crea con ese stock
// inicial, y registra exactamente un movimiento de entrada. Todo en una transacción.
// Los precios de un repuesto existente no se modifican.
func (uc *UseCase) UpsertPartOnSupply(ctx context.Context, in SupplyInput) (*SupplyResult, error) {
	in.Name = NormalizeKey(in.Name)
	in.Reference = NormalizeKey(in.Reference)
	if err := validateSupply(in); err != nil {
		return nil, err
	}

	part := &entity.Part{
		Name:          in.Name,
		Reference:     in.Reference,
		Manufacturer:  strings.TrimSpace(in.Manufacturer),
		Description:   strings.TrimSpace(in.Description),
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
	}
	res := &SupplyResult{Part: part}
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error {
		created, err := partRepo.UpsertOnSupply(ctx, part, in.Quantity)
		if err != nil {
			return fmt.Errorf("upsert repuesto: %w", err)
		}
		res.Created = created
		mov, err := inventory.NewLedger(partRepo, movRepo).RecordMovement(ctx, inventory.MovementInput{
			PartID:    part.ID,
			Direction: entity.MovementEntry,
			Quantity:  in.Quantity,
			Note:      "suministro",
		})
		if err != nil {
			return err
		}
		res.Movement = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func validateSupply(in SupplyInput) error {
	if in.Name == "" {
		return domain.NewValidationError("name", "requerido")
	}
	if in.Reference == "" {
		return domain.NewValidationError("reference", "requerido")
	}
	if in.PurchasePrice.IsNegative() {
		return domain.NewValidationError("purchase_price", "no puede ser negativo")
	}
	if in.SalePrice.IsNegative() {
		return domain.NewValidationError("sale_price", "no puede ser negativo")
	}
	if !domain.InCents(in.PurchasePrice) {
		return domain.NewValidationError("purchase_price", "admite como máximo dos decimales")
	}
	if !domain.InCents(in.SalePrice) {
		return domain.NewValidationError("sale_price", "admite como máximo dos decimales")
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero mayor que cero")
	}
	return nil
}

// SupplyFromRequest interpreta el formulario de suministro (texto) y ejecuta el upsert.
// Cualquier campo mal formado se rechaza antes de tocar el almacenamiento.
func (uc *UseCase) SupplyFromRequest(ctx context.Context, in dto.SupplyPartRequest) (*dto.SupplyPartResponse, error) {
	purchase, err := parsePrice("purchase_price", in.PurchasePrice)
	if err != nil {
		return nil, err
	}
	sale, err := parsePrice("sale_price", in.SalePrice)
	if err != nil {
		return nil, err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil {
		return nil, domain.NewValidationError("quantity", "debe ser un número entero")
	}
	res, err := uc.UpsertPartOnSupply(ctx, SupplyInput{
		Name:          in.Name,
		Reference:     in.Reference,
		Manufacturer:  in.Manufacturer,
		Description:   in.Description,
		PurchasePrice: purchase,
		SalePrice:     sale,
		Quantity:      qty,
	})
	if err != nil {
		return nil, err
	}
	return &dto.SupplyPartResponse{
		Part:       *ToPartResponse(res.Part),
		Created:    res.Created,
		MovementID: res.Movement.ID,
	}, nil
}

// parsePrice acepta coma decimal ("12,50") además de punto.
func parsePrice(field, raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return decimal.Zero, domain.NewValidationError(field, "requerido")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "debe ser numérico")
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewValidationError(field, "no puede ser negativo")
	}
	return d, nil
}

// ResolvePartID devuelve el id del único repuesto con ese nombre.
// Ninguno: NotFoundError. Varios (misma pieza con distintas referencias): ValidationError.
func (uc *UseCase) ResolvePartID(ctx context.Context, name string) (int64, error) {
	return ResolvePartID(ctx, uc.partRepo, name)
}

// ResolvePartID versión sobre un repositorio cualquiera (pool o tx).
func ResolvePartID(ctx context.Context, repo repository.PartRepository, name string) (int64, error) {
	key := NormalizeKey(name)
	if key == "" {
		return 0, domain.NewValidationError("part_name", "requerido")
	}
	parts, err := repo.FindByName(ctx, key)
	if err != nil {
		return 0, err
	}
	switch len(parts) {
	case 0:
		return 0, &domain.NotFoundError{Resource: "repuesto", Key: key}
	case 1:
		return parts[0].ID, nil
	default:
		return 0, domain.NewValidationError("part_name", fmt.Sprintf("nombre ambiguo: %d repuestos se llaman %q", len(parts), key))
	}
}

// GetPart obtiene un repuesto por ID.
func (uc *UseCase) GetPart(ctx context.Context, id int64) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, &domain.NotFoundError{Resource: "repuesto", Key: id}
	}
	return ToPartResponse(part), nil
}

// ListParts lista repuestos por nombre con paginación.
func (uc *UseCase) ListParts(ctx context.Context, page dto.PageRequest) (*dto.PartListResponse, error) {
	page = page.Normalize()
	list, err := uc.partRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  page.Result(len(items)),
	}, nil
}

// ToPartResponse convierte un repuesto a su DTO.
func ToPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:            p.ID,
		Name:          p.Name,
		Reference:     p.Reference,
		Manufacturer:  p.Manufacturer,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
