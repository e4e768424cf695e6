package linkedinmail

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

const alertFixture = `<html><body>
<table>
  <tr><td>
    <a href="https://www.linkedin.com/comm/jobs/view/4011223344/?tracking=x">
      <img alt="Acme logo">
    </a>
    <a href="https://www.linkedin.com/comm/jobs/view/4011223344/?tracking=y">Senior Data Engineer</a>
    <p>Acme Corp · Austin, TX (Remote)</p>
    <p>$150,000 - $180,000 /year</p>
    <p>Easy Apply</p>
  </td></tr>
</table>
<table>
  <tr><td>
    <a href="https://www.linkedin.com/jobs/view/4055667788/">Machine Learning Engineer</a>
    <p>Beta AI · San Francisco, CA</p>
  </td></tr>
</table>
<a href="https://www.linkedin.com/jobs/search/?alertAction=unsubscribe">Unsubscribe</a>
</body></html>`

func TestParseAlertHTML(t *testing.T) {
	jobs, err := ParseAlertHTML(alertFixture)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	first := jobs[0]
	require.Equal(t, domain.SourceLinkedIn, first.Source)
	require.Equal(t, "4011223344", first.ExternalID)
	require.Equal(t, "Senior Data Engineer", first.Title, "logo anchor must not win")
	require.Equal(t, "Acme Corp", first.Company)
	require.Equal(t, "Austin, TX (Remote)", first.Location)
	require.Equal(t, "$150,000 - $180,000 /year", first.Salary)
	require.True(t, first.EasyApplyAvailable)

	second := jobs[1]
	require.Equal(t, "4055667788", second.ExternalID)
	require.Equal(t, "Beta AI", second.Company)
	require.False(t, second.EasyApplyAvailable)
}

func TestParseAlertHTMLRedirectWrapper(t *testing.T) {
	body := `<a href="https://www.linkedin.com/track?url=https%3A%2F%2Fwww.linkedin.com%2Fjobs%2Fview%2F12345%2F">Data Engineer</a>`
	jobs, err := ParseAlertHTML(body)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "12345", jobs[0].ExternalID)
	require.Equal(t, "https://www.linkedin.com/jobs/view/12345/", jobs[0].URL)
}

func TestParseAlertHTMLSkipsTitlelessCards(t *testing.T) {
	body := `<a href="https://www.linkedin.com/jobs/view/999/"><img alt="logo"></a>`
	jobs, err := ParseAlertHTML(body)
	require.NoError(t, err)
	require.Empty(t, jobs)
}

func TestIsJobAlert(t *testing.T) {
	tests := []struct {
		from, subject string
		want          bool
	}{
		{"jobalerts-noreply@linkedin.com", "anything", true},
		{"someone@example.com", "Your job alert: data engineer", true},
		{"someone@example.com", "LinkedIn: 8 new jobs for you", true},
		{"someone@example.com", "Weekly newsletter", false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, IsJobAlert(tc.from, tc.subject), tc.subject)
	}
}
