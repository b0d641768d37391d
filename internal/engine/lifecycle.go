package engine

import "feedlot-backend/internal/models"

// DeletionStrategy is the caller's choice for a lot that still holds
// active animals.
type DeletionStrategy string

const (
	StrategyNone      DeletionStrategy = ""
	StrategyTransfer  DeletionStrategy = "transfer"
	StrategyTerminate DeletionStrategy = "terminate"
)

// MovementReasonArchived goes on every LotMovement appended while a lot
// is being dismantled via transfer.
const MovementReasonArchived = "reorganization — lot archived"

// DeletionPlan is the validated outcome of a lot-removal request: what
// to log and whether animals move or go. Execution, in one storage
// transaction, is the caller's job; the plan itself writes nothing.
type DeletionPlan struct {
	Action           models.DeletionAction
	AnimalsAffected  int
	DestinationLotID *uint
	Detail           string
}

// PlanLotDeletion validates the removal of a lot and decides the
// disposition of its animals:
//
//   - 0 active animals: hard delete, no strategy needed.
//   - transfer: every animal moves to the destination lot (must exist
//     and differ from the source), one movement row per animal.
//   - terminate: animals are permanently removed with the lot ("end of
//     cycle"). Irreversible; the boundary gates the confirmation.
//
// Invalid transitions are rejected before anything is written.
// Behavior is undefined if two deletion strategies race on the same
// lot; callers must serialize destructive operations per lot.
func PlanLotDeletion(lot *models.Lot, activeAnimals int, strategy DeletionStrategy, destinationLotID *uint) (*DeletionPlan, *Error) {
	if activeAnimals == 0 {
		if strategy != StrategyNone {
			return nil, Consistency("lot has no active animals, no strategy applies")
		}
		return &DeletionPlan{
			Action:          models.DeletionActionHardDelete,
			AnimalsAffected: 0,
			Detail:          "empty lot removed",
		}, nil
	}

	switch strategy {
	case StrategyTransfer:
		if destinationLotID == nil {
			return nil, Validation("destination_lot_id", "transfer requires a destination lot")
		}
		if *destinationLotID == lot.ID {
			return nil, Consistency("destination lot must differ from the lot being removed")
		}
		return &DeletionPlan{
			Action:           models.DeletionActionMove,
			AnimalsAffected:  activeAnimals,
			DestinationLotID: destinationLotID,
			Detail:           MovementReasonArchived,
		}, nil

	case StrategyTerminate:
		if destinationLotID != nil {
			return nil, Validation("destination_lot_id", "terminate does not take a destination lot")
		}
		return &DeletionPlan{
			Action:          models.DeletionActionFinalize,
			AnimalsAffected: activeAnimals,
			Detail:          "end of cycle",
		}, nil

	case StrategyNone:
		return nil, Validation("strategy", "lot has active animals, choose transfer or terminate")

	default:
		return nil, Validation("strategy", "unknown strategy: "+string(strategy))
	}
}
