package cover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

const (
	itunesDefaultCountry = "US"
	itunesBaseURL        = "https://itunes.apple.com/search"
)

// itunesCountries is the allow-list of ISO country codes the iTunes Search
// API accepts as storefronts, per spec.md §4.5.
var itunesCountries = map[string]bool{
	"AE": true, "AG": true, "AI": true, "AL": true, "AM": true, "AO": true, "AR": true, "AT": true,
	"AU": true, "AZ": true, "BB": true, "BE": true, "BF": true, "BG": true, "BH": true, "BJ": true,
	"BM": true, "BN": true, "BO": true, "BR": true, "BS": true, "BT": true, "BW": true, "BY": true,
	"BZ": true, "CA": true, "CG": true, "CH": true, "CL": true, "CN": true, "CO": true, "CR": true,
	"CV": true, "CY": true, "CZ": true, "DE": true, "DK": true, "DM": true, "DO": true, "DZ": true,
	"EC": true, "EE": true, "EG": true, "ES": true, "FI": true, "FJ": true, "FM": true, "FR": true,
	"GB": true, "GD": true, "GH": true, "GM": true, "GR": true, "GT": true, "GW": true, "GY": true,
	"HK": true, "HN": true, "HR": true, "HU": true, "ID": true, "IE": true, "IL": true, "IN": true,
	"IS": true, "IT": true, "JM": true, "JO": true, "JP": true, "KE": true, "KG": true, "KH": true,
	"KN": true, "KR": true, "KW": true, "KY": true, "KZ": true, "LA": true, "LB": true, "LC": true,
	"LK": true, "LR": true, "LT": true, "LU": true, "LV": true, "MD": true, "MG": true, "MK": true,
	"ML": true, "MN": true, "MO": true, "MR": true, "MS": true, "MT": true, "MU": true, "MW": true,
	"MX": true, "MY": true, "MZ": true, "NA": true, "NE": true, "NG": true, "NI": true, "NL": true,
	"NP": true, "NO": true, "NZ": true, "OM": true, "PA": true, "PE": true, "PG": true, "PH": true,
	"PK": true, "PL": true, "PT": true, "PW": true, "PY": true, "QA": true, "RO": true, "RU": true,
	"SA": true, "SB": true, "SC": true, "SE": true, "SG": true, "SI": true, "SK": true, "SL": true,
	"SN": true, "SR": true, "ST": true, "SV": true, "SZ": true, "TC": true, "TD": true, "TH": true,
	"TJ": true, "TM": true, "TN": true, "TR": true, "TT": true, "TW": true, "TZ": true, "UA": true,
	"UG": true, "US": true, "UY": true, "UZ": true, "VC": true, "VE": true, "VG": true, "VN": true,
	"YE": true, "ZA": true, "ZW": true,
}

// itunesCandidateSizes are substituted for "100x100" in each result's
// artworkUrl100, per spec.md §4.5.
var itunesCandidateSizes = []int{5000, 1200, 600}

type itunesResponse struct {
	Results []itunesResult `json:"results"`
}

type itunesResult struct {
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName"`
	ArtworkURL100  string `json:"artworkUrl100"`
}

// itunesProvider queries the iTunes Search API, per spec.md §4.5.
type itunesProvider struct {
	httpClient *http.Client
	baseURL    string
}

func newItunesProvider(httpClient *http.Client) *itunesProvider {
	return &itunesProvider{httpClient: httpClient, baseURL: itunesBaseURL}
}

func (p *itunesProvider) Search(ctx context.Context, release Release) ([]model.CoverCandidate, error) {
	country := strings.ToUpper(release.Country)
	if !itunesCountries[country] {
		country = itunesDefaultCountry
	}

	term := strings.TrimSpace(release.JoinedArtists() + " " + release.Title)

	query := url.Values{}
	query.Set("media", "music")
	query.Set("entity", "album")
	query.Set("country", country)
	query.Set("term", term)

	requestURL := p.baseURL + "?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("itunes: build request: %w", err)
	}

	response, err := p.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("itunes: request: %w", err)
	}
	defer response.Body.Close() //nolint:errcheck // best-effort close on a read-only GET.

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("itunes: unexpected status %d", response.StatusCode)
	}

	var parsed itunesResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("itunes: decode response: %w", err)
	}

	var candidates []model.CoverCandidate

	for _, result := range parsed.Results {
		for _, size := range itunesCandidateSizes {
			substituted := fmt.Sprintf("%dx%d", size, size)
			artworkURL := strings.Replace(result.ArtworkURL100, "100x100", substituted, 1)

			if !probe(ctx, p.httpClient, artworkURL) {
				continue
			}

			candidates = append(candidates, model.CoverCandidate{
				Provider: ProviderItunes,
				Urls:     []string{artworkURL},
				Width:    size,
				Height:   size,
				Title:    result.CollectionName,
				Artist:   result.ArtistName,
			})
		}
	}

	return candidates, nil
}
