package fetch

import (
	"net/url"
	"strings"
)

// Platform is a recognized job board.
type Platform string

// Known job boards.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformIndeed     Platform = "indeed"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformUnknown    Platform = "unknown"
)

type boardSelectors struct {
	hosts   []string
	content []string
	noise   []string
}

var boards = map[Platform]boardSelectors{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformIndeed: {
		hosts:   []string{"indeed.com"},
		content: []string{"#jobDescriptionText", ".jobsearch-JobComponent", ".jobsearch-jobDescriptionText"},
		noise:   []string{"#jobsearch-ViewJobButtons-container", ".jobsearch-JobMetadataFooter"},
	},
	PlatformLinkedIn: {
		hosts:   []string{"linkedin.com"},
		content: []string{".show-more-less-html__markup", ".description__text", ".jobs-description"},
		noise:   []string{".sign-up-modal", ".join-form", ".similar-jobs"},
	},
}

// commonNoise is removed from every job page.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board serving rawURL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for platform, board := range boards {
		for _, h := range board.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the content selectors to try for platform,
// followed by the generic job page selectors.
func PlatformContentSelectors(platform Platform) []string {
	board, ok := boards[platform]
	if !ok {
		return JobPostingSelectors()
	}
	out := make([]string, 0, len(board.content)+len(JobPostingSelectors()))
	out = append(out, board.content...)
	return append(out, JobPostingSelectors()...)
}

// PlatformNoiseSelectors returns the selectors removed before extraction on platform.
func PlatformNoiseSelectors(platform Platform) []string {
	out := make([]string, 0, len(commonNoise)+4)
	out = append(out, commonNoise...)
	if board, ok := boards[platform]; ok {
		out = append(out, board.noise...)
	}
	return out
}
