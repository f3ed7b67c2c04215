package queries

import (
	"context"
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/guard"
)

var ErrGetCargoViolationsQueryIsNotConstructed = errors.New(
	"GetCargoViolationsQuery must be created via NewGetCargoViolationsQuery constructor",
)

// GetCargoViolationsQuery checks every stored mover against its cargo.
type GetCargoViolationsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCargoViolationsQuery() GetCargoViolationsQuery {
	return GetCargoViolationsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCargoViolationsQuery) Validate() error {
	return q.guard.Validate(ErrGetCargoViolationsQueryIsNotConstructed)
}

// CargoViolationView names a mover whose stored cargo breaks an invariant.
// Err joins every violation found for it.
type CargoViolationView struct {
	MoverID kernel.UUID
	Version int64
	Err     error
}

// GetCargoViolationsQueryHandler reports movers whose current weight differs
// from the sum of their items, exceeds the limit, or whose cargo holds
// duplicate or unknown item ids. It never repairs anything.
type GetCargoViolationsQueryHandler struct {
	movers ports.MoverRepository
	items  ports.ItemRepository
}

func NewGetCargoViolationsQueryHandler(
	movers ports.MoverRepository,
	items ports.ItemRepository,
) GetCargoViolationsQueryHandler {
	return GetCargoViolationsQueryHandler{movers: movers, items: items}
}

func (h GetCargoViolationsQueryHandler) Handle(
	ctx context.Context,
	query GetCargoViolationsQuery,
) ([]CargoViolationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	movers, err := h.movers.GetAll(ctx)
	if err != nil {
		return nil, storageError("list movers", err)
	}

	violations := make([]CargoViolationView, 0)
	for _, m := range movers {
		cargo, findErr := h.items.FindByIDs(ctx, m.Items())
		if findErr != nil {
			return nil, storageError("find items", findErr)
		}
		if verifyErr := m.VerifyCargo(cargo); verifyErr != nil {
			violations = append(violations, CargoViolationView{
				MoverID: m.ID(),
				Version: m.Version(),
				Err:     verifyErr,
			})
		}
	}
	return violations, nil
}
