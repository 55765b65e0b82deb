package schedule

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DiscoveryTimeout controls how long we wait for a council landing page.
var DiscoveryTimeout = 10 * time.Second

// DiscoverTimetableURL fetches the council's landing page and discovers
// the most plausible timetable document URL (xlsx preferred, pdf accepted).
func DiscoverTimetableURL(c CouncilDescriptor) (string, error) {
	if c.LandingURL == "" {
		return "", fmt.Errorf("council %q has no LandingURL", c.Key)
	}

	client := NewHTTPClient(DiscoveryTimeout, false)
	resp, err := client.Get(c.LandingURL)
	if err != nil {
		return "", fmt.Errorf("fetch landing url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("landing url returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read landing body: %w", err)
	}

	return discoverTimetableURLFromHTML(c.LandingURL, string(body))
}

func discoverTimetableURLFromHTML(baseURL, html string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	type candidate struct {
		rawHref string
		text    string
		score   int
	}

	var candidates []candidate

	// Anchor tags with link text
	anchorRe := regexp.MustCompile(`(?is)<a[^>]+href="([^"]+\.(?:xlsx|pdf))"[^>]*>([^<]*)</a>`)
	for _, m := range anchorRe.FindAllStringSubmatch(html, -1) {
		href := strings.TrimSpace(m[1])
		text := strings.TrimSpace(htmlUnescape(m[2]))
		candidates = append(candidates, candidate{rawHref: href, text: text, score: scoreTimetableCandidate(href, text)})
	}

	// Fallback: any href pointing at a timetable document
	if len(candidates) == 0 {
		hrefRe := regexp.MustCompile(`(?i)href="([^"]+\.(?:xlsx|pdf))"`)
		for _, m := range hrefRe.FindAllStringSubmatch(html, -1) {
			href := strings.TrimSpace(m[1])
			candidates = append(candidates, candidate{rawHref: href, score: scoreTimetableCandidate(href, "")})
		}
	}

	if len(candidates) == 0 {
		return "", errors.New("no timetable links found on page")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		iHTTPS := strings.HasPrefix(strings.ToLower(candidates[i].rawHref), "https://")
		jHTTPS := strings.HasPrefix(strings.ToLower(candidates[j].rawHref), "https://")
		if iHTTPS != jHTTPS {
			return iHTTPS
		}
		return candidates[i].rawHref < candidates[j].rawHref
	})

	best := candidates[0].rawHref
	bestURL, err := base.Parse(best)
	if err != nil {
		return "", fmt.Errorf("resolve href %q: %w", best, err)
	}

	return bestURL.String(), nil
}

func scoreTimetableCandidate(href, text string) int {
	hrefLower := strings.ToLower(href)
	textLower := strings.ToLower(text)

	score := 0

	if strings.HasSuffix(hrefLower, ".xlsx") {
		score += 4
	}
	if strings.Contains(textLower, "collection") || strings.Contains(textLower, "calendar") {
		score += 3
	}
	if strings.Contains(textLower, "recycling") || strings.Contains(textLower, "refuse") || strings.Contains(textLower, "bin") {
		score += 2
	}
	if strings.Contains(hrefLower, "collection") || strings.Contains(hrefLower, "waste") {
		score += 2
	}
	if strings.Contains(hrefLower, strconv.Itoa(time.Now().Year())) {
		score += 1
	}

	return score
}

func htmlUnescape(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	return replacer.Replace(s)
}

// RefreshCouncilTimetable discovers and downloads the council's current
// timetable document into its data directory, keeping the document's own
// filename so the directory scan picks it up by extension.
func RefreshCouncilTimetable(c CouncilDescriptor) (string, error) {
	docURL, err := DiscoverTimetableURL(c)
	if err != nil {
		return "", err
	}

	client := NewHTTPClient(30*time.Second, false)
	resp, err := client.Get(docURL)
	if err != nil {
		return "", fmt.Errorf("download timetable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("timetable download returned status %d", resp.StatusCode)
	}

	if c.DataDir == "" {
		return "", fmt.Errorf("council %q has no DataDir configured", c.Key)
	}

	u, err := url.Parse(docURL)
	if err != nil {
		return "", fmt.Errorf("parse timetable url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		name = c.Key + ".xlsx"
	}

	dest := c.DataDir + "/" + name
	if err := writeFileAtomically(dest, resp.Body); err != nil {
		return "", err
	}
	return docURL, nil
}
