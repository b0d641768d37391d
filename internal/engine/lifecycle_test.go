package engine

import (
	"testing"

	"feedlot-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPlanLotDeletion_EmptyLotHardDeletes(t *testing.T) {
	t.Parallel()

	lot := models.Lot{ID: 5, Name: "Curral 3"}

	plan, err := PlanLotDeletion(&lot, 0, StrategyNone, nil)
	require.Nil(t, err)
	require.Equal(t, models.DeletionActionHardDelete, plan.Action)
	require.Equal(t, 0, plan.AnimalsAffected)
	require.Nil(t, plan.DestinationLotID)
}

func TestPlanLotDeletion_EmptyLotRejectsStrategy(t *testing.T) {
	t.Parallel()

	lot := models.Lot{ID: 5, Name: "Curral 3"}

	_, err := PlanLotDeletion(&lot, 0, StrategyTerminate, nil)
	require.NotNil(t, err)
	require.Equal(t, ErrConsistency, err.Kind)
}

func TestPlanLotDeletion_Transfer(t *testing.T) {
	t.Parallel()

	lot := models.Lot{ID: 5, Name: "Curral 3"}
	dest := uintPtr(9)

	plan, err := PlanLotDeletion(&lot, 3, StrategyTransfer, dest)
	require.Nil(t, err)
	require.Equal(t, models.DeletionActionMove, plan.Action)
	require.Equal(t, 3, plan.AnimalsAffected)
	require.Equal(t, uint(9), *plan.DestinationLotID)
	require.Equal(t, MovementReasonArchived, plan.Detail)
}

func TestPlanLotDeletion_TransferValidations(t *testing.T) {
	t.Parallel()

	lot := models.Lot{ID: 5, Name: "Curral 3"}

	_, err := PlanLotDeletion(&lot, 3, StrategyTransfer, nil)
	require.NotNil(t, err)
	require.Equal(t, ErrValidation, err.Kind)
	require.Equal(t, "destination_lot_id", err.Field)

	_, err = PlanLotDeletion(&lot, 3, StrategyTransfer, uintPtr(5))
	require.NotNil(t, err)
	require.Equal(t, ErrConsistency, err.Kind)
}

func TestPlanLotDeletion_Terminate(t *testing.T) {
	t.Parallel()

	lot := models.Lot{ID: 5, Name: "Curral 3"}

	plan, err := PlanLotDeletion(&lot, 4, StrategyTerminate, nil)
	require.Nil(t, err)
	require.Equal(t, models.DeletionActionFinalize, plan.Action)
	require.Equal(t, 4, plan.AnimalsAffected)
	require.Equal(t, "end of cycle", plan.Detail)

	_, err = PlanLotDeletion(&lot, 4, StrategyTerminate, uintPtr(9))
	require.NotNil(t, err)
	require.Equal(t, ErrValidation, err.Kind)
}

func TestPlanLotDeletion_NoStrategyOnPopulatedLot(t *testing.T) {
	t.Parallel()

	lot := models.Lot{ID: 5, Name: "Curral 3"}

	_, err := PlanLotDeletion(&lot, 2, StrategyNone, nil)
	require.NotNil(t, err)
	require.Equal(t, ErrValidation, err.Kind)
	require.Equal(t, "strategy", err.Field)

	_, err = PlanLotDeletion(&lot, 2, DeletionStrategy("archive"), nil)
	require.NotNil(t, err)
	require.Equal(t, ErrValidation, err.Kind)
}
