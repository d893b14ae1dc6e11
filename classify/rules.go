// Copyright 2025 dsaini64
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dsaini64/regulations/core"
)

// Prohibition detection runs over the description only. Regulatory prose is
// full of "shall not" in non-prohibitive contexts, so content matches are
// ignored for this purpose.
var prohibitedKeywords = []string{
	"prohibited", "forbidden", "not permitted", "not allowed",
	"banned", "unlawful", "illegal",
	"shall not", "must not", "may not", "cannot", "prohibits",
	"ban", "outlaw", "no person may", "no person shall",
	"it is unlawful", "it is illegal", "prohibited from",
	"forbidden to", "prohibition",
	"may not be", "shall not be", "must not be", "cannot be",
}

// Phrases that on their own mark a regulation as prohibiting.
var prohibitedPhrases = []string{
	"shall not", "must not", "may not", "cannot", "no person may",
	"no person shall", "it is unlawful", "it is illegal",
	"prohibited from", "forbidden to",
}

// Keywords that suggest a compliance obligation rather than a prohibition.
var allowedKeywords = []string{
	"permitted", "allowed", "authorized", "approved", "legal",
	"may", "can", "shall", "must", "requires", "mandates",
	"regulation", "provision", "requirement", "standard", "guideline",
}

var requirementIndicators = []string{
	"requirement", "requirements", "standard", "standards", "regulation", "regulations",
	"rule", "rules", "procedure", "procedures", "guideline", "guidelines",
	"registration", "labeling", "approval", "manufacturing", "prescription",
	"record", "records", "report", "reports", "quota", "quotas",
}

// Descriptions that are pure organizational structure, not regulations.
var structuralHeadings = []string{
	"chapter i", "chapter ii", "chapter iii",
	"subchapter a", "subchapter b", "subchapter c", "subchapter d",
	"subchapter e", "subchapter f", "subchapter g", "subchapter h",
	"subchapter i", "subchapter j", "subchapter k", "subchapter l",
}

// classifyByRules is the deterministic fallback classification. Rules are
// ordered by priority; the first match wins, and the final rule always
// matches.
func classifyByRules(description, content string) (core.RegulationStatus, string) {
	descLower := strings.ToLower(description)
	fullText := strings.ToLower(strings.TrimSpace(description + " " + content))

	// 1. Prohibition phrase in description
	for _, phrase := range prohibitedPhrases {
		if strings.Contains(descLower, phrase) {
			return core.StatusProhibited, "Regulation explicitly prohibits activities (prohibition phrase found in description)"
		}
	}

	// 2. Multiple prohibition keywords in description
	prohibitedCount := 0
	for _, keyword := range prohibitedKeywords {
		if strings.Contains(descLower, keyword) {
			prohibitedCount++
		}
	}
	if prohibitedCount >= 2 {
		return core.StatusProhibited, fmt.Sprintf("Contains %d prohibition indicator(s) in description", prohibitedCount)
	}

	// 3. Reserved sections; content counts here
	if strings.Contains(fullText, "reserved") {
		return core.StatusReserved, "Regulation section is reserved for future use"
	}

	// 4. Bare chapter/subchapter headings
	trimmedDesc := strings.TrimSpace(descLower)
	if strings.Contains(descLower, "chapter") {
		for _, heading := range structuralHeadings {
			if trimmedDesc == heading {
				return core.StatusAdministrative, "Organizational structure"
			}
		}
	}

	// 5. Definitions sections
	if strings.Contains(descLower, "definition") {
		return core.StatusAdministrative, "Definitions section"
	}

	// 6. Requirement wording; the most common case
	for _, keyword := range requirementIndicators {
		if strings.Contains(descLower, keyword) {
			return core.StatusRequiresCompliance, "Establishes regulatory requirements that must be followed"
		}
	}

	// 7. Regulated product categories
	for _, keyword := range []string{"food", "drug", "device", "controlled substance"} {
		if strings.Contains(descLower, keyword) {
			return core.StatusRequiresCompliance, "Regulatory requirement for compliance"
		}
	}

	// 8. Generic compliance wording in description or content
	allowedCount := 0
	for _, keyword := range allowedKeywords {
		if strings.Contains(descLower, keyword) {
			allowedCount++
		}
		if strings.Contains(fullText, keyword) {
			allowedCount++
		}
	}
	if allowedCount > 0 {
		return core.StatusRequiresCompliance, fmt.Sprintf("Regulatory requirement (%d compliance indicators found)", allowedCount)
	}

	// 9. Very short or purely organizational descriptions
	if utf8.RuneCountInString(trimmedDesc) < 20 || trimmedDesc == "general" || trimmedDesc == "definitions" {
		return core.StatusAdministrative, "Organizational structure"
	}

	// 10. Default: Title 21 regulations are requirements, not prohibitions
	return core.StatusRequiresCompliance, "Regulatory provision"
}
