package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alreinhart/TXSemiModel/internal/model"
)

const oraclePageSize = 25

// oracleListResponse is the response envelope of the
// recruitingCEJobRequisitions finder endpoint.
type oracleListResponse struct {
	Items []struct {
		TotalJobsCount  int                `json:"TotalJobsCount"`
		RequisitionList []oracleListingRow `json:"requisitionList"`
	} `json:"items"`
}

type oracleListingRow struct {
	ID              string `json:"Id"`
	Title           string `json:"Title"`
	PostedDate      string `json:"PostedDate"`
	PrimaryLocation string `json:"PrimaryLocation"`
}

// oracleDetailResponse is the response envelope of the
// recruitingCEJobRequisitionDetails finder endpoint.
type oracleDetailResponse struct {
	Items []oracleDetail `json:"items"`
}

type oracleDetail struct {
	ID                     string            `json:"Id"`
	Title                  string            `json:"Title"`
	PrimaryLocation        string            `json:"PrimaryLocation"`
	ExternalPostedDate     string            `json:"ExternalPostedStartDate"`
	ExternalDescriptionStr string            `json:"ExternalDescriptionStr"`
	JobFunction            string            `json:"JobFunction"`
	Category               string            `json:"CategoryName"`
	RequisitionFlexFields  []oracleFlexField `json:"requisitionFlexFields"`
}

// oracleFlexField is one prompt/value pair of requisition metadata. Oracle
// tenants expose arbitrary site-configured fields this way; the ones we
// care about are matched by prompt text below.
type oracleFlexField struct {
	Prompt string `json:"Prompt"`
	Value  string `json:"Value"`
}

// OracleCloudAdapter fetches job postings from an Oracle Cloud CX
// recruiting site (the "hcmRestApi" career-site surface).
type OracleCloudAdapter struct {
	baseURL     string // e.g. https://xx.fa.us2.oraclecloud.com/hcmRestApi/resources/latest
	siteNumber  string // career site identifier, e.g. "CX_1"
	companyName string
	keyword     string
	userAgent   string
	client      *http.Client
}

// NewOracleCloudAdapter creates an adapter for an Oracle Cloud CX career
// site. keyword scopes the requisition search server-side; pass "" for the
// whole site.
func NewOracleCloudAdapter(baseURL, siteNumber, companyName, keyword, userAgent string, client *http.Client) *OracleCloudAdapter {
	return &OracleCloudAdapter{
		baseURL:     strings.TrimRight(baseURL, "/"),
		siteNumber:  siteNumber,
		companyName: companyName,
		keyword:     keyword,
		userAgent:   userAgent,
		client:      client,
	}
}

// FetchJobs retrieves requisitions in two phases, mirroring the Workday
// adapter: paginate the finder listing, then fetch each requisition's
// detail for the description HTML and flex-field metadata.
func (a *OracleCloudAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := a.fetchAllListings(ctx)
	if err != nil {
		return nil, err
	}

	var jobs []model.Job
	for _, row := range rows {
		job, err := a.fetchDetail(ctx, row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (a *OracleCloudAdapter) fetchAllListings(ctx context.Context) ([]oracleListingRow, error) {
	var all []oracleListingRow
	offset := 0

	for {
		finder := fmt.Sprintf("findReqs;siteNumber=%s,limit=%d,offset=%d,sortBy=POSTING_DATES_DESC",
			a.siteNumber, oraclePageSize, offset)
		if a.keyword != "" {
			finder += ",keyword=" + a.keyword
		}
		// The finder value carries a literal ';', which query parsers
		// reject when left raw, so it must be percent-encoded.
		q := url.Values{"onlyData": {"true"}, "finder": {finder}}
		reqURL := a.baseURL + "/recruitingCEJobRequisitions?" + q.Encode()

		var listResp oracleListResponse
		if err := a.getJSON(ctx, reqURL, "listing", &listResp); err != nil {
			return nil, err
		}

		if len(listResp.Items) == 0 {
			break
		}
		page := listResp.Items[0]
		all = append(all, page.RequisitionList...)

		offset += oraclePageSize
		if len(page.RequisitionList) == 0 || offset >= page.TotalJobsCount {
			break
		}
	}

	return all, nil
}

func (a *OracleCloudAdapter) fetchDetail(ctx context.Context, row oracleListingRow) (model.Job, error) {
	finder := fmt.Sprintf(`ById;Id="%s",siteNumber=%s`, row.ID, a.siteNumber)
	q := url.Values{"expand": {"all"}, "onlyData": {"true"}, "finder": {finder}}
	reqURL := a.baseURL + "/recruitingCEJobRequisitionDetails?" + q.Encode()

	var detailResp oracleDetailResponse
	if err := a.getJSON(ctx, reqURL, "detail", &detailResp); err != nil {
		return model.Job{}, err
	}
	if len(detailResp.Items) == 0 {
		return model.Job{}, fmt.Errorf("oracle detail for %s: requisition %s not found", a.companyName, row.ID)
	}
	d := detailResp.Items[0]

	location := d.PrimaryLocation
	if location == "" {
		location = row.PrimaryLocation
	}

	postedRaw := d.ExternalPostedDate
	if postedRaw == "" {
		postedRaw = row.PostedDate
	}

	job := model.Job{
		Company:     a.companyName,
		Title:       d.Title,
		Location:    location,
		URL:         a.jobURL(row.ID),
		Description: d.ExternalDescriptionStr,
		PostedRaw:   postedRaw,
		Source:      "oraclecloud",
	}

	// Structured requisition metadata; these never come from text
	// extraction, only from the platform itself.
	job.Fields.JobIdentification = row.ID
	job.Fields.JobCategory = firstNonEmpty(d.Category, d.JobFunction)
	for _, ff := range d.RequisitionFlexFields {
		switch normalizePrompt(ff.Prompt) {
		case "degree level":
			job.Fields.DegreeLevel = strings.TrimSpace(ff.Value)
		case "ecl/gtc required", "ecl gtc required":
			job.Fields.EclGtcRequired = strings.TrimSpace(ff.Value)
		case "job category":
			if job.Fields.JobCategory == "" {
				job.Fields.JobCategory = strings.TrimSpace(ff.Value)
			}
		}
	}

	return job, nil
}

func (a *OracleCloudAdapter) getJSON(ctx context.Context, reqURL, phase string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("oracle %s request for %s: %w", phase, a.companyName, err)
	}
	setCommonHeaders(req, a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("oracle %s fetch for %s: %w", phase, a.companyName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("oracle %s fetch for %s: unexpected status %d", phase, a.companyName, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("oracle %s decode for %s: %w", phase, a.companyName, err)
	}
	return nil
}

// jobURL builds the public posting URL for a requisition. The REST base
// lives under /hcmRestApi/...; the public site lives under /hcmUI.
func (a *OracleCloudAdapter) jobURL(id string) string {
	root := a.baseURL
	if i := strings.Index(root, "/hcmRestApi"); i >= 0 {
		root = root[:i]
	}
	return fmt.Sprintf("%s/hcmUI/CandidateExperience/en/sites/%s/job/%s", root, a.siteNumber, id)
}

func normalizePrompt(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
