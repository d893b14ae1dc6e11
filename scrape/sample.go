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


package scrape

import (
	"context"

	"github.com/dsaini64/regulations/core"
)

// SampleSupplier serves a curated seed set of Title 21 regulations.
// It backs the system when no live source or data file is configured.
type SampleSupplier struct{}

// NewSampleSupplier creates a supplier over the built-in seed set.
func NewSampleSupplier() *SampleSupplier {
	return &SampleSupplier{}
}

// FetchRegulations returns a fresh copy of the seed set.
func (s *SampleSupplier) FetchRegulations(ctx context.Context) ([]*core.Regulation, error) {
	records := make([]*core.Regulation, len(sampleRegulations))
	for i := range sampleRegulations {
		rec := sampleRegulations[i]
		records[i] = &rec
	}
	return records, nil
}

// sampleRegulations covers the major Title 21 subchapters: FDA food,
// drug, biologic, cosmetic, device and tobacco regulation under
// Chapter I, and DEA controlled-substance regulation under Chapter II.
var sampleRegulations = []core.Regulation{
	{
		Title: "Title 21", Chapter: "I", Subchapter: "A", Part: "1", SectionRange: "1.1",
		Description: "General provisions - Establishes general provisions and definitions for FDA regulations",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-A/part-1",
		Status:      core.StatusRequiresCompliance, StatusReason: "General administrative provisions",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "A", Part: "2", SectionRange: "2.1",
		Description: "General administrative rulings and decisions",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-A/part-2",
		Status:      core.StatusRequiresCompliance, StatusReason: "Administrative procedures",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "B", Part: "100", SectionRange: "100.1",
		Description: "Food for human consumption - General provisions for food regulations",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-B/part-100",
		Status:      core.StatusRequiresCompliance, StatusReason: "Regulates food products",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "B", Part: "101", SectionRange: "101.1",
		Description: "Food labeling - Requirements for food product labeling",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-B/part-101",
		Status:      core.StatusRequiresCompliance, StatusReason: "Mandates labeling requirements",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "B", Part: "110", SectionRange: "110.1",
		Description: "Current good manufacturing practice in manufacturing, packing, or holding human food",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-B/part-110",
		Status:      core.StatusRequiresCompliance, StatusReason: "Establishes manufacturing standards",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "C", Part: "200", SectionRange: "200.1",
		Description: "General - General provisions for drug regulations",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-C/part-200",
		Status:      core.StatusRequiresCompliance, StatusReason: "General drug provisions",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "C", Part: "201", SectionRange: "201.1",
		Description: "Labeling - Requirements for prescription drug labeling",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-C/part-201",
		Status:      core.StatusRequiresCompliance, StatusReason: "Mandates drug labeling",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "D", Part: "310", SectionRange: "310.1",
		Description: "New drugs - Requirements for new drug applications",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-D/part-310",
		Status:      core.StatusRequiresCompliance, StatusReason: "Establishes approval requirements",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "D", Part: "312", SectionRange: "312.1",
		Description: "Investigational new drug application - Requirements for IND submissions",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-D/part-312",
		Status:      core.StatusRequiresCompliance, StatusReason: "Regulates clinical trials",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "E", Part: "500", SectionRange: "500.1",
		Description: "General - General provisions for animal drugs",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-E/part-500",
		Status:      core.StatusRequiresCompliance, StatusReason: "Regulates animal drug products",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "E", Part: "589", SectionRange: "589.1",
		Description: "Substances prohibited from use in animal food or feed",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-E/part-589",
		Status:      core.StatusProhibited, StatusReason: "Prohibits specified substances in animal feed",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "F", Part: "600", SectionRange: "600.1",
		Description: "Biological products - General provisions for biological products",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-F/part-600",
		Status:      core.StatusRequiresCompliance, StatusReason: "Regulates biologics",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "F", Part: "601", SectionRange: "601.1",
		Description: "Licensing - Requirements for biologics license applications",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-F/part-601",
		Status:      core.StatusRequiresCompliance, StatusReason: "Establishes licensing requirements",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "G", Part: "700", SectionRange: "700.1",
		Description: "General - General provisions for cosmetic products",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-G/part-700",
		Status:      core.StatusRequiresCompliance, StatusReason: "Regulates cosmetic products",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "H", Part: "801", SectionRange: "801.1",
		Description: "Labeling - Requirements for medical device labeling",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-H/part-801",
		Status:      core.StatusRequiresCompliance, StatusReason: "Mandates device labeling",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "H", Part: "807", SectionRange: "807.1",
		Description: "Establishment registration and device listing - Requirements for device manufacturers",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-H/part-807",
		Status:      core.StatusRequiresCompliance, StatusReason: "Requires registration",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "H", Part: "814", SectionRange: "814.1",
		Description: "Premarket approval of medical devices - Requirements for PMA applications",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-H/part-814",
		Status:      core.StatusRequiresCompliance, StatusReason: "Establishes approval process",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "J", Part: "1000", SectionRange: "1000.1",
		Description: "General - General provisions for radiological health",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-J/part-1000",
		Status:      core.StatusRequiresCompliance, StatusReason: "Regulates radiological equipment",
	},
	{
		Title: "Title 21", Chapter: "I", Subchapter: "K", Part: "1140", SectionRange: "1140.1",
		Description: "Cigarettes and smokeless tobacco - Restrictions on sale and distribution",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-I/subchapter-K/part-1140",
		Status:      core.StatusProhibited, StatusReason: "Restricts sale to minors",
	},
	{
		Title: "Title 21", Chapter: "II", Subchapter: "", Part: "1300", SectionRange: "1300.01",
		Description: "Definitions - Definitions for controlled substances",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-II/part-1300",
		Status:      core.StatusRequiresCompliance, StatusReason: "Provides definitions",
	},
	{
		Title: "Title 21", Chapter: "II", Subchapter: "", Part: "1301", SectionRange: "1301.01",
		Description: "Registration of manufacturers, distributors, and dispensers of controlled substances",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-II/part-1301",
		Status:      core.StatusRequiresCompliance, StatusReason: "Requires registration",
	},
	{
		Title: "Title 21", Chapter: "II", Subchapter: "", Part: "1308", SectionRange: "1308.01",
		Description: "Schedules of controlled substances",
		URL:         "https://www.ecfr.gov/current/title-21/chapter-II/part-1308",
		Status:      core.StatusRequiresCompliance, StatusReason: "Classifies controlled substances",
	},
}
