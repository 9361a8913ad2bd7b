package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const detailPage = `<html><body>
<dl>
  <div><dt>Institution</dt><dd>Georgia Tech</dd></div>
  <div><dt>Program</dt><dd>Computer Science</dd></div>
  <div><dt>Degree Type</dt><dd>PhD</dd></div>
  <div><dt>Degree's Country of Origin</dt><dd>International</dd></div>
  <div><dt>Decision</dt><dd>Accepted</dd></div>
  <div><dt>Notification</dt><dd>on 15/01/2026 via E-mail</dd></div>
  <div><dt>Undergrad GPA</dt><dd>3.80</dd></div>
  <div><dt>GRE General</dt>
    <ul>
      <li><span>GRE General:</span><span>324</span></li>
      <li><span>GRE Verbal:</span><span>162</span></li>
      <li><span>Analytical Writing:</span><span>4.50</span></li>
    </ul>
  </div>
  <div><dt>Notes</dt><dd>Accepted off the waitlist</dd></div>
</dl>
</body></html>`

func newDetailSource(serverURL string) Source {
	return Source{
		BaseURL:         serverURL,
		ListingPath:     "/survey/",
		DisallowedPaths: []string{"/cgi-bin/"},
	}
}

func TestFetchDetailMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailPage))
	}))
	defer server.Close()

	seed := Record{
		URL:       server.URL + "/result/101",
		DateAdded: "January 15, 2026",
		Term:      "Fall 2026",
	}

	fetcher := NewDetailFetcher(newDetailSource(server.URL), server.Client(), "test-agent")
	record := fetcher.FetchDetail(context.Background(), seed)

	if record.IsZero() {
		t.Fatal("Expected filled record, got zero record")
	}
	if record.University != "Georgia Tech" {
		t.Errorf("Expected university 'Georgia Tech', got: %s", record.University)
	}
	if record.Program != "Computer Science" {
		t.Errorf("Expected program 'Computer Science', got: %s", record.Program)
	}
	if record.Degree != "PhD" {
		t.Errorf("Expected degree 'PhD', got: %s", record.Degree)
	}
	if record.Origin != "International" {
		t.Errorf("Expected origin 'International', got: %s", record.Origin)
	}
	if record.Status != "Accepted" {
		t.Errorf("Expected status 'Accepted', got: %s", record.Status)
	}
	if record.StatusDate != "on 15/01/2026 via E-mail" {
		t.Errorf("Expected raw status date, got: %s", record.StatusDate)
	}
	if record.GPA != "3.80" {
		t.Errorf("Expected GPA '3.80', got: %s", record.GPA)
	}
	if record.GREQuant != "324" {
		t.Errorf("Expected GRE quant '324', got: %s", record.GREQuant)
	}
	if record.GREVerbal != "162" {
		t.Errorf("Expected GRE verbal '162', got: %s", record.GREVerbal)
	}
	if record.GREAW != "4.50" {
		t.Errorf("Expected GRE AW '4.50', got: %s", record.GREAW)
	}
	if record.Comments != "Accepted off the waitlist" {
		t.Errorf("Expected comments, got: %s", record.Comments)
	}

	// seeded fields survive the detail merge
	if record.DateAdded != "January 15, 2026" {
		t.Errorf("Expected seeded date added to survive, got: %s", record.DateAdded)
	}
	if record.Term != "Fall 2026" {
		t.Errorf("Expected seeded term to survive, got: %s", record.Term)
	}
}

func TestFetchDetailMissingValueNode(t *testing.T) {
	page := `<html><body>
<dl>
  <div><dt>Institution</dt><dd>Georgia Tech</dd></div>
  <div><dt>Program</dt></div>
  <div><dt>Degree Type</dt><dd>MS</dd></div>
</dl>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := NewDetailFetcher(newDetailSource(server.URL), server.Client(), "test-agent")
	record := fetcher.FetchDetail(context.Background(), Record{URL: server.URL + "/result/102"})

	if record.University != "Georgia Tech" {
		t.Errorf("Expected university 'Georgia Tech', got: %s", record.University)
	}
	if record.Program != "" {
		t.Errorf("Expected program unset for missing value node, got: %s", record.Program)
	}
	if record.Degree != "MS" {
		t.Errorf("Expected degree 'MS', got: %s", record.Degree)
	}
}

func TestFetchDetailNoEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>gone</p></body></html>"))
	}))
	defer server.Close()

	fetcher := NewDetailFetcher(newDetailSource(server.URL), server.Client(), "test-agent")
	record := fetcher.FetchDetail(context.Background(), Record{URL: server.URL + "/result/103"})

	if !record.IsZero() {
		t.Errorf("Expected zero record for page without entries, got: %+v", record)
	}
}

func TestFetchDetailRestrictedURL(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	source := newDetailSource(server.URL)
	source.DisallowedPaths = []string{"/result/"}

	fetcher := NewDetailFetcher(source, server.Client(), "test-agent")
	record := fetcher.FetchDetail(context.Background(), Record{URL: server.URL + "/result/104"})

	if !record.IsZero() {
		t.Errorf("Expected zero record for restricted URL, got: %+v", record)
	}
	if requested {
		t.Error("Expected no network call for restricted URL")
	}
}
