package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/alreinhart/TXSemiModel/internal/model"
)

const workdayPageSize = 20

// workdayListingResponse is the response from the Workday jobs listing endpoint.
type workdayListingResponse struct {
	Total       int              `json:"total"`
	JobPostings []workdayListing `json:"jobPostings"`
}

type workdayListing struct {
	Title         string   `json:"title"`
	ExternalPath  string   `json:"externalPath"`
	LocationsText string   `json:"locationsText"`
	PostedOn      string   `json:"postedOn"`
	BulletFields  []string `json:"bulletFields"`
}

// workdayListingRequest is the POST body for the Workday jobs listing endpoint.
type workdayListingRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

// workdayDetailResponse is the response from the Workday job detail endpoint.
type workdayDetailResponse struct {
	JobPostingInfo workdayJobDetail `json:"jobPostingInfo"`
}

type workdayJobDetail struct {
	JobReqID            string   `json:"jobReqId"`
	Title               string   `json:"title"`
	Location            string   `json:"location"`
	PostedOn            string   `json:"postedOn"`
	StartDate           string   `json:"startDate"`
	ExternalURL         string   `json:"externalUrl"`
	JobDescription      string   `json:"jobDescription"`
	AdditionalLocations []string `json:"additionalLocations"`
}

// WorkdayAdapter fetches job postings from a Workday career site.
type WorkdayAdapter struct {
	baseURL     string
	companyName string
	searchText  string
	userAgent   string
	client      *http.Client
}

// NewWorkdayAdapter creates an adapter for a Workday career site. searchText
// scopes the board query server-side (e.g. "semiconductor"); pass "" to
// fetch the whole board.
func NewWorkdayAdapter(baseURL, companyName, searchText, userAgent string, client *http.Client) *WorkdayAdapter {
	return &WorkdayAdapter{
		baseURL:     strings.TrimRight(baseURL, "/"),
		companyName: companyName,
		searchText:  searchText,
		userAgent:   userAgent,
		client:      client,
	}
}

// FetchJobs retrieves the full board in two phases:
//  1. Paginate through POST /jobs for every listing matching searchText.
//  2. GET /job/{externalPath} per listing for the description and metadata.
//
// Descriptions come back as raw HTML in Job.Description; extraction happens
// downstream in the scrape pipeline.
func (a *WorkdayAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	listings, err := a.fetchAllListings(ctx)
	if err != nil {
		return nil, err
	}

	var jobs []model.Job
	for _, l := range listings {
		job, err := a.fetchDetail(ctx, l)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (a *WorkdayAdapter) fetchAllListings(ctx context.Context) ([]workdayListing, error) {
	var all []workdayListing
	offset := 0

	for {
		body := workdayListingRequest{
			AppliedFacets: map[string]any{},
			Limit:         workdayPageSize,
			Offset:        offset,
			SearchText:    a.searchText,
		}

		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("workday listing marshal for %s: %w", a.companyName, err)
		}

		url := a.baseURL + "/jobs"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("workday listing request for %s: %w", a.companyName, err)
		}
		req.Header.Set("Content-Type", "application/json")
		setCommonHeaders(req, a.userAgent)

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("workday listing fetch for %s: %w", a.companyName, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &model.HTTPError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
				Err:        fmt.Errorf("workday listing fetch for %s: unexpected status %d", a.companyName, resp.StatusCode),
			}
		}

		var listResp workdayListingResponse
		if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
			return nil, fmt.Errorf("workday listing decode for %s: %w", a.companyName, err)
		}

		all = append(all, listResp.JobPostings...)

		offset += workdayPageSize
		if len(listResp.JobPostings) == 0 || offset >= listResp.Total {
			break
		}
	}

	return all, nil
}

func (a *WorkdayAdapter) fetchDetail(ctx context.Context, listing workdayListing) (model.Job, error) {
	url := a.baseURL + "/" + listing.ExternalPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Job{}, fmt.Errorf("workday detail request for %s: %w", a.companyName, err)
	}
	setCommonHeaders(req, a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return model.Job{}, fmt.Errorf("workday detail fetch for %s: %w", a.companyName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Job{}, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("workday detail fetch for %s: unexpected status %d", a.companyName, resp.StatusCode),
		}
	}

	var detail workdayDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return model.Job{}, fmt.Errorf("workday detail decode for %s: %w", a.companyName, err)
	}

	info := detail.JobPostingInfo

	location := info.Location
	if location == "" {
		location = listing.LocationsText
	}
	if len(info.AdditionalLocations) > 0 {
		location = location + "; " + strings.Join(info.AdditionalLocations, "; ")
	}

	jobURL := info.ExternalURL
	if jobURL == "" {
		jobURL = url
	}

	// Prefer startDate (already "2006-01-02"), fall back to the relative
	// postedOn string; the pipeline's date parser handles both.
	postedRaw := info.StartDate
	if postedRaw == "" {
		postedRaw = strings.TrimPrefix(info.PostedOn, "Posted ")
	}

	return model.Job{
		Company:     a.companyName,
		Title:       info.Title,
		Location:    location,
		URL:         jobURL,
		Description: info.JobDescription,
		PostedRaw:   postedRaw,
		Source:      "workday",
	}, nil
}
