package checks

import (
	"fmt"
	"regexp"
)

// The heuristics below are plain tables so they can be tuned without touching
// gate logic. False positives are an accepted limitation.

// triggerPatterns are usage-conditional phrasings a description should carry
// so the agent knows when to load the skill.
var triggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\buse when\b`),
	regexp.MustCompile(`(?i)\btrigger`),
	regexp.MustCompile(`(?i)\bwhen .*(?:want|need|ask)`),
	regexp.MustCompile(`(?i)\bfor (?:creating|editing|working|handling)`),
	regexp.MustCompile(`(?i)\buse this (?:skill )?when\b`),
	regexp.MustCompile(`(?i)\buse(?:d)? for\b`),
	regexp.MustCompile(`(?i)\bused when\b`),
	regexp.MustCompile(`(?i)\bwhen (?:the user|working with)\b`),
	regexp.MustCompile(`(?i)\binvoke when\b`),
}

// placeholderMarkers are bracketed template markers left in the body.
// Matched case-sensitively outside code, so documented template syntax such
// as {{ .Name }} or a TODO: comment in an example does not count.
var placeholderMarkers = []string{
	"[TODO",
	"[INSERT",
	"[PLACEHOLDER",
	"<PLACEHOLDER>",
}

// directiveVoicePattern flags second-person directives. "you can" and "this
// will" are fine; only the listed forms are flagged.
var directiveVoicePattern = regexp.MustCompile(`(?i)\byou (?:should|need to|must)\b`)

// recursionTemplates match a skill telling the agent to invoke itself. %s is
// replaced by the quoted skill name.
var recursionTemplates = []string{
	`(?i)\b(?:invoke|call|use|run|trigger) (?:the )?%s skill\b`,
	`(?i)\bskill\(\s*"?%s"?\s*\)`,
}

// recursionPatterns do not depend on the skill name.
var recursionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brecursively (?:invoke|call|use) (?:this|the same) skill\b`),
	regexp.MustCompile(`(?i)\b(?:invoke|call|use) this skill (?:again|recursively)\b`),
}

// pathRefPattern finds bundle-relative paths into references/, scripts/ and
// assets/. Matches may contain '*', '<', '>', '{' or '}', which mark them as
// emphasis or placeholders to be skipped.
var pathRefPattern = regexp.MustCompile(
	`\b(?:references/[^\s()\[\]"'` + "`" + `,;|]+\.md|` +
		`scripts/[^\s()\[\]"'` + "`" + `,;|]+\.(?:py|sh)|` +
		`assets/[^\s()\[\]"'` + "`" + `,;|]+\.[A-Za-z0-9]+)\b`)

// placeholderPathChars mark a path match as not a real path.
const placeholderPathChars = "*<>{}"

var (
	prohibitionPattern = regexp.MustCompile(`\b(?:NEVER|MUST NOT|DO NOT|FORBIDDEN)\b`)
	mandatePattern     = regexp.MustCompile(`\b(?:ALWAYS|REQUIRED|MANDATORY)\b`)
	mustPattern        = regexp.MustCompile(`\bMUST\b`)
	mustNotPattern     = regexp.MustCompile(`\bMUST NOT\b`)
)

// compileRecursionPatterns returns every recursion pattern for skillName.
func compileRecursionPatterns(skillName string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(recursionTemplates)+len(recursionPatterns))
	if skillName != "" {
		quoted := regexp.QuoteMeta(skillName)
		for _, tmpl := range recursionTemplates {
			out = append(out, regexp.MustCompile(fmt.Sprintf(tmpl, quoted)))
		}
	}
	return append(out, recursionPatterns...)
}

// hasMandate reports whether text has a strong mandate keyword. A MUST that
// belongs to MUST NOT is a prohibition, not a mandate.
func hasMandate(text string) bool {
	if mandatePattern.MatchString(text) {
		return true
	}
	return len(mustPattern.FindAllStringIndex(text, -1)) > len(mustNotPattern.FindAllStringIndex(text, -1))
}
