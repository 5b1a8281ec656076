package reporting

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/spboyer/skillgate/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Skipped    int              `xml:"skipped,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one skill bundle.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one gate.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

// JUnitFailure carries a gate's errors.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a gate that did not run.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit maps a report onto one suite with a test case per gate.
// Errors become failures; warnings go to system-out.
func ConvertToJUnit(report *models.SkillReport) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:      report.Skill,
		Timestamp: report.Timestamp,
		Properties: []JUnitProperty{
			{Name: "path", Value: report.Path},
			{Name: "status", Value: string(report.Status)},
			{Name: "total_tokens", Value: fmt.Sprintf("%d", report.Total.Tokens.Value)},
			{Name: "budget_percent", Value: fmt.Sprintf("%.1f", report.Total.BudgetPercent)},
		},
	}

	for _, gate := range models.GateOrder {
		tc := JUnitTestCase{Name: gate, Classname: report.Skill}
		switch report.Gates.Get(gate) {
		case models.StatusSkip:
			tc.Skipped = &JUnitSkipped{Message: "gate did not run"}
			suite.Skipped++
		case models.StatusFail:
			errs := issuesFor(report.Errors, gate)
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%d error(s)", len(errs)),
				Type:    "GateFailure",
				Body:    formatIssueLines(errs),
			}
			suite.Failures++
		}
		tc.SystemOut = formatIssueLines(issuesFor(report.Warnings, gate))
		suite.TestCases = append(suite.TestCases, tc)
		suite.Tests++
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Skipped:    suite.Skipped,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func issuesFor(issues []models.Issue, gate string) []models.Issue {
	var out []models.Issue
	for _, is := range issues {
		if is.Gate == gate {
			out = append(out, is)
		}
	}
	return out
}

func formatIssueLines(issues []models.Issue) string {
	var b strings.Builder
	for _, is := range issues {
		fmt.Fprintf(&b, "[%s] %s\n", is.Type, is.Message)
		if is.Suggestion != "" {
			fmt.Fprintf(&b, "  suggestion: %s\n", is.Suggestion)
		}
	}
	return b.String()
}

// JUnit renders report as JUnit XML for CI test dashboards.
func JUnit(report *models.SkillReport) (string, error) {
	data, err := xml.MarshalIndent(ConvertToJUnit(report), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	return xml.Header + string(data) + "\n", nil
}
