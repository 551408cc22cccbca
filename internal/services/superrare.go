package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

// SuperRareService resolves an artwork page URL into the metadata needed to
// curate it, via the marketplace GraphQL API.
type SuperRareService struct {
	client *http.Client
	apiURL string
}

const defaultSuperRareAPI = "https://api.rare.xyz/v1/graphql"

var artworkURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?superrare\.com/artwork/(?:eth/)?[^/]+/\d+$`)

// NewSuperRareService creates a fetcher instance.
func NewSuperRareService() *SuperRareService {
	apiURL := os.Getenv("SUPERRARE_API_URL")
	if apiURL == "" {
		apiURL = defaultSuperRareAPI
	}
	return &SuperRareService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiURL: apiURL,
	}
}

var superRareService *SuperRareService

// GetSuperRareService returns the singleton fetcher.
func GetSuperRareService() *SuperRareService {
	if superRareService == nil {
		superRareService = NewSuperRareService()
	}
	return superRareService
}

// ArtworkMetadata is what curation needs from the marketplace.
type ArtworkMetadata struct {
	Title       string
	Description string
	ArtistName  string
	Image       string
	PageURL     string
}

// CleanURL strips query and fragment from an artwork page URL.
func CleanURL(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}

// ParseArtworkURL validates a SuperRare artwork URL and returns its
// universal token id, contract-tokenId.
func ParseArtworkURL(raw string) (string, error) {
	cleaned := CleanURL(raw)
	if !artworkURLPattern.MatchString(cleaned) {
		return "", fmt.Errorf("invalid SuperRare URL: %s", raw)
	}

	parts := strings.Split(cleaned, "/")
	tokenID := parts[len(parts)-1]
	contract := parts[len(parts)-2]
	return contract + "-" + tokenID, nil
}

type nftQueryRequest struct {
	Query     string `json:"query"`
	Variables struct {
		UniversalTokenID []string `json:"universalTokenId"`
	} `json:"variables"`
}

type nftQueryResponse struct {
	Data struct {
		NftByUtid []struct {
			UniversalTokenID string `json:"universalTokenId"`
			Creator          *struct {
				PrimaryProfile *struct {
					SR *struct {
						SRName string `json:"srName"`
					} `json:"sr"`
				} `json:"primaryProfile"`
			} `json:"creator"`
			Metadata *struct {
				Title               string `json:"title"`
				Description         string `json:"description"`
				ProxyImageMediumURI string `json:"proxyImageMediumUri"`
				ProxyVideoMediumURI string `json:"proxyVideoMediumUri"`
			} `json:"metadata"`
		} `json:"nftByUtid"`
	} `json:"data"`
}

const nftByUtidQuery = `
query NftByUtid($universalTokenId: [String!]!) {
  nftByUtid(universalTokenId: $universalTokenId) {
    universalTokenId
    creator {
      primaryProfile {
        sr {
          srName
        }
      }
    }
    metadata {
      title
      description
      proxyImageMediumUri
      proxyVideoMediumUri
    }
  }
}`

// Fetch resolves artwork metadata for a SuperRare page URL.
func (s *SuperRareService) Fetch(ctx context.Context, pageURL string) (*ArtworkMetadata, error) {
	utid, err := ParseArtworkURL(pageURL)
	if err != nil {
		return nil, err
	}

	var reqBody nftQueryRequest
	reqBody.Query = nftByUtidQuery
	reqBody.Variables.UniversalTokenID = []string{utid}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SuperRare API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SuperRare API error: %s", resp.Status)
	}

	var parsed nftQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode SuperRare response: %w", err)
	}
	if len(parsed.Data.NftByUtid) == 0 {
		return nil, fmt.Errorf("artwork not found: %s", utid)
	}

	nft := parsed.Data.NftByUtid[0]
	if nft.Metadata == nil {
		return nil, fmt.Errorf("artwork %s has no metadata", utid)
	}

	md := &ArtworkMetadata{
		Title:       nft.Metadata.Title,
		Description: nft.Metadata.Description,
		PageURL:     CleanURL(pageURL),
	}
	if md.Title == "" {
		md.Title = "Untitled Artwork"
	}

	md.ArtistName = "Unknown Artist"
	if nft.Creator != nil && nft.Creator.PrimaryProfile != nil && nft.Creator.PrimaryProfile.SR != nil {
		md.ArtistName = nft.Creator.PrimaryProfile.SR.SRName
	}

	image := nft.Metadata.ProxyImageMediumURI
	if image == "" {
		image = nft.Metadata.ProxyVideoMediumURI
	}
	md.Image = cleanImageURL(image)

	return md, nil
}

// cleanImageURL unwraps proxy/CDN image URLs and strips resize parameters
// so the stored URL points at the full-size asset.
func cleanImageURL(raw string) string {
	if raw == "" {
		return raw
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}

	u, err := url.Parse(decoded)
	if err != nil {
		return raw
	}

	if u.Host == "pixura.imgix.net" {
		// The actual image URL is embedded as the path.
		return strings.TrimPrefix(u.Path, "/")
	}
	if strings.Contains(u.Host, "pixura.net") {
		return strings.TrimPrefix(u.Path, "/sr-proxy/")
	}

	q := u.Query()
	for _, p := range []string{"w", "h", "crop", "width", "height", "fit", "fm", "quality", "video", "name", "auto", "s", "ixlib"} {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
