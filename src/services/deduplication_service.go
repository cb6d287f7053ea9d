package services

import (
	"consolidator/src/identity"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type DeduplicationServiceI interface {
	Deduplicate(ctx context.Context, holdings []models.Holding) ([]models.Holding, []models.RemovedDuplicate)
}

// DeduplicationService keeps one holding per canonical asset key. Managers
// claim keys in priority order; within a manager, holdings claim keys in the
// order received. Later holdings with a claimed key are dropped unchanged.
type DeduplicationService struct {
	priority []string
	keyFor   func(assetName string) string
}

// NewDeduplicationService uses priority as the claim order. Managers missing
// from it go last, in the order they first appear in the input.
func NewDeduplicationService(priority []string) *DeduplicationService {
	return &DeduplicationService{priority: priority, keyFor: identity.Normalize}
}

func (s *DeduplicationService) Deduplicate(ctx context.Context, holdings []models.Holding) ([]models.Holding, []models.RemovedDuplicate) {
	logger := utils.LoggerFromContext(ctx)

	byManager := map[string][]models.Holding{}
	var order []string
	seenManager := map[string]bool{}
	for _, manager := range s.priority {
		if !seenManager[manager] {
			seenManager[manager] = true
			order = append(order, manager)
		}
	}
	for _, h := range holdings {
		if !seenManager[h.ManagerName] {
			seenManager[h.ManagerName] = true
			order = append(order, h.ManagerName)
		}
		byManager[h.ManagerName] = append(byManager[h.ManagerName], h)
	}

	claimedBy := map[string]string{}
	clean := make([]models.Holding, 0, len(holdings))
	var removed []models.RemovedDuplicate
	for _, manager := range order {
		for _, h := range byManager[manager] {
			key := s.keyFor(h.AssetName)
			if original, ok := claimedBy[key]; ok {
				removed = append(removed, models.RemovedDuplicate{
					DuplicateHolding: h,
					OriginalManager:  original,
					CanonicalKey:     key,
				})
				logger.WithFields(logrus.Fields{
					"asset":            h.AssetName,
					"manager":          manager,
					"original_manager": original,
					"key":              key,
				}).Info("Removed duplicate holding")
				continue
			}
			claimedBy[key] = manager
			clean = append(clean, h)
		}
	}

	logger.WithFields(logrus.Fields{
		"original": len(holdings),
		"removed":  len(removed),
		"clean":    len(clean),
	}).Info("Deduplication summary")
	return clean, removed
}
