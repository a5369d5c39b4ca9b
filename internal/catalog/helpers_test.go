package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,title,description,required_skills,relevant_interests,min_experience,min_education,salary_min,salary_max,work_style_compatibility,growth_potential,job_market_demand
software_engineer,Software Engineer,Builds software,"{""programming"": 2, ""problem_solving"": 3}","{""technology"": 3, ""innovation"": 3}",2,bachelor,70000,120000,"[""remote"", ""hybrid""]",9,8
data_scientist,Data Scientist,Analyzes data,"{""statistics"": 3, ""programming"": 2}","{""analytics"": 4}",3,master,80000,140000,"[""remote""]",10,8
nurse,Registered Nurse,Cares for patients,"{""patient_care"": ""advanced""}","{""healthcare"": ""very_high""}",0,associate,60000,95000,"[""onsite""]",7,10
`

func sampleRows() []map[string]string {
	return []map[string]string{
		{
			"id": "software_engineer", "title": "Software Engineer", "description": "Builds software",
			"required_skills": `{"programming": 2, "problem_solving": 3}`, "relevant_interests": `{"technology": 3, "innovation": 3}`,
			"min_experience": "2", "min_education": "bachelor", "salary_min": "70000", "salary_max": "120000",
			"work_style_compatibility": `["remote", "hybrid"]`, "growth_potential": "9", "job_market_demand": "8",
		},
		{
			"id": "data_scientist", "title": "Data Scientist", "description": "Analyzes data",
			"required_skills": `{"statistics": 3, "programming": 2}`, "relevant_interests": `{"analytics": 4}`,
			"min_experience": "3", "min_education": "master", "salary_min": "80000", "salary_max": "140000",
			"work_style_compatibility": `["remote"]`, "growth_potential": "10", "job_market_demand": "8",
		},
		{
			"id": "nurse", "title": "Registered Nurse", "description": "Cares for patients",
			"required_skills": `{"patient_care": "advanced"}`, "relevant_interests": `{"healthcare": "very_high"}`,
			"min_experience": "0", "min_education": "associate", "salary_min": "60000", "salary_max": "95000",
			"work_style_compatibility": `["onsite"]`, "growth_potential": "7", "job_market_demand": "10",
		},
	}
}

func tableOf(rows []map[string]string) *Table {
	return &Table{Columns: append([]string(nil), RequiredColumns...), Rows: rows}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func withCell(rows []map[string]string, i int, col, value string) []map[string]string {
	rows[i][col] = value
	return rows
}
