package service

import (
	"context"

	"github.com/portwarden/portwarden/domain"
)

// Favorites returns the pinned ports in insertion order.
func (svc *Service) Favorites() []uint16 {
	svc.favMu.Lock()
	defer svc.favMu.Unlock()
	ports := make([]uint16, len(svc.favorites))
	copy(ports, svc.favorites)
	return ports
}

// AddFavorite pins a port. Adding an already-present port is a no-op; the
// full set is persisted immediately on change.
func (svc *Service) AddFavorite(ctx context.Context, port uint16) error {
	if err := domain.ValidatePort(int(port)); err != nil {
		return err
	}

	svc.favMu.Lock()
	defer svc.favMu.Unlock()
	if _, ok := svc.favSet[port]; ok {
		return nil
	}
	svc.favorites = append(svc.favorites, port)
	svc.favSet[port] = struct{}{}
	return svc.persistFavoritesLocked(ctx)
}

// RemoveFavorite unpins a port; removing an absent one is a no-op.
func (svc *Service) RemoveFavorite(ctx context.Context, port uint16) error {
	svc.favMu.Lock()
	defer svc.favMu.Unlock()
	if _, ok := svc.favSet[port]; !ok {
		return nil
	}
	delete(svc.favSet, port)
	kept := svc.favorites[:0]
	for _, p := range svc.favorites {
		if p != port {
			kept = append(kept, p)
		}
	}
	svc.favorites = kept
	return svc.persistFavoritesLocked(ctx)
}

func (svc *Service) ToggleFavorite(ctx context.Context, port uint16) error {
	svc.favMu.Lock()
	_, present := svc.favSet[port]
	svc.favMu.Unlock()
	if present {
		return svc.RemoveFavorite(ctx, port)
	}
	return svc.AddFavorite(ctx, port)
}

func (svc *Service) setFavorites(ports []uint16) {
	svc.favMu.Lock()
	defer svc.favMu.Unlock()
	svc.favorites = svc.favorites[:0]
	svc.favSet = make(map[uint16]struct{}, len(ports))
	for _, port := range ports {
		if _, ok := svc.favSet[port]; ok {
			continue
		}
		svc.favorites = append(svc.favorites, port)
		svc.favSet[port] = struct{}{}
	}
}

func (svc *Service) persistFavoritesLocked(ctx context.Context) error {
	ports := make([]uint16, len(svc.favorites))
	copy(ports, svc.favorites)
	return svc.favRepo.Save(ctx, ports)
}
