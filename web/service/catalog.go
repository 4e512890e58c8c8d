package service

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"comicshelf/config"
	"comicshelf/util/common"

	"github.com/goccy/go-json"
)

// ErrBookNotFound is returned by Lookup when the catalog has no volume for
// the ISBN.
var ErrBookNotFound = common.NewError("no catalog entry for isbn")

const unknownField = "Unknown"

// BookRecord is the normalized result of a catalog lookup. Text fields fall
// back to "Unknown", image and link fields to ""; Isbn always echoes the
// queried value.
type BookRecord struct {
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"publishedDate"`
	CoverImage    string `json:"coverImage"`
	Isbn          string `json:"isbn"`
	InfoLink      string `json:"infoLink"`
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			InfoLink string `json:"infoLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// CatalogService queries an external volume catalog (Google-Books-shaped
// API) for bibliographic metadata by ISBN.
type CatalogService struct {
	baseURL string
	client  *http.Client
}

// NewCatalogService builds a service against the configured catalog URL.
func NewCatalogService() *CatalogService {
	return NewCatalogServiceWithURL(config.GetCatalogURL())
}

// NewCatalogServiceWithURL builds a service against an explicit base URL.
func NewCatalogServiceWithURL(baseURL string) *CatalogService {
	return &CatalogService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup issues a single catalog query and maps the first matching volume
// into a BookRecord. Zero matches come back as ErrBookNotFound; transport
// failures propagate.
func (s *CatalogService) Lookup(isbn string) (*BookRecord, error) {
	reqURL := fmt.Sprintf("%s/volumes?q=%s", s.baseURL, url.QueryEscape("isbn:"+isbn))

	resp, err := s.client.Get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewErrorf("catalog returned status %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return nil, err
	}
	if len(volumes.Items) == 0 {
		return nil, ErrBookNotFound
	}

	info := volumes.Items[0].VolumeInfo
	record := &BookRecord{
		Title:         orUnknown(info.Title),
		Authors:       orUnknown(strings.Join(info.Authors, ", ")),
		Publisher:     orUnknown(info.Publisher),
		PublishedDate: orUnknown(info.PublishedDate),
		CoverImage:    info.ImageLinks.Thumbnail,
		Isbn:          isbn,
		InfoLink:      info.InfoLink,
	}
	return record, nil
}

func orUnknown(value string) string {
	if value == "" {
		return unknownField
	}
	return value
}
