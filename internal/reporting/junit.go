package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/astpanel/isosel/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite holds the quotas of one selection phase.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase is one quota.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure is a quota shortfall.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

var junitScopes = []models.ErrorScope{models.ScopeSpecies, models.ScopeBugdrug, models.ScopeGroup}

// ConvertToJUnit turns the quota outcomes of a run into one JUnit suite per
// selection phase, so CI dashboards can track shortfalls across panel
// revisions.
func ConvertToJUnit(runID string, at time.Time, quotas []models.Quota) *JUnitTestSuites {
	out := &JUnitTestSuites{}
	for _, scope := range junitScopes {
		suite := JUnitTestSuite{
			Name:       "selection." + string(scope),
			Timestamp:  at.Format(time.RFC3339),
			Properties: []JUnitProperty{{Name: "run_id", Value: runID}},
		}
		for _, q := range quotas {
			if q.Scope != scope {
				continue
			}
			tc := JUnitTestCase{Name: q.Subject, Classname: suite.Name}
			if q.Shortfall {
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("%d/%d isolates were selected", q.Selected, q.Target),
					Type:    "QuotaShortfall",
				}
				suite.Failures++
			}
			suite.TestCases = append(suite.TestCases, tc)
			suite.Tests++
		}
		if suite.Tests == 0 {
			continue
		}
		out.Tests += suite.Tests
		out.Failures += suite.Failures
		out.TestSuites = append(out.TestSuites, suite)
	}
	return out
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(suites *JUnitTestSuites, path string) error {
	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
