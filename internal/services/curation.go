package services

import (
	"context"

	"artvote/internal/models"
	"artvote/internal/utils"
)

// CurationService turns a marketplace artwork URL into a curated Artwork
// row with all counters at zero. When a staking service is present, only
// wallets with a staked balance may curate.
type CurationService struct {
	store   Storage
	sr      *SuperRareService
	staking *StakingService
}

func NewCurationService(store Storage, sr *SuperRareService, staking *StakingService) *CurationService {
	return &CurationService{store: store, sr: sr, staking: staking}
}

// Eligible reports whether the wallet may curate. Deployments without a
// staking contract configured leave curation open to any connected wallet.
func (s *CurationService) Eligible(ctx context.Context, address string) bool {
	if address == "" {
		return false
	}
	if s.staking == nil {
		return true
	}
	return s.staking.IsEligible(ctx, address)
}

// Submit fetches metadata for the artwork URL and persists it under the
// curator's identity.
func (s *CurationService) Submit(ctx context.Context, pageURL, curatorAddress, curatorName, curatorAvatar string) (*models.Artwork, error) {
	if curatorAddress == "" {
		return nil, ErrUnauthenticated
	}
	if !s.Eligible(ctx, curatorAddress) {
		return nil, ErrUnauthorized
	}

	md, err := s.sr.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	artwork := &models.Artwork{
		Title:            md.Title,
		Description:      md.Description,
		ArtistName:       md.ArtistName,
		ArtistAvatar:     utils.AvatarURL(md.ArtistName),
		ArtistProfileURL: "https://superrare.com/" + md.ArtistName,
		Image:            md.Image,
		ImageURL:         md.PageURL,
		CuratorAddress:   utils.NormalizeAddress(curatorAddress),
		CuratorName:      curatorName,
		CuratorAvatar:    curatorAvatar,
	}
	if artwork.CuratorAvatar == "" {
		artwork.CuratorAvatar = utils.AvatarURL(artwork.CuratorAddress)
	}

	if err := s.store.CreateArtwork(ctx, artwork); err != nil {
		return nil, err
	}
	return artwork, nil
}
