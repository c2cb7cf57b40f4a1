package ai

// SchemaDDL is the only schema the model is told about.
const SchemaDDL = `Create table STUDENT(NAME VARCHAR(25), CLASS VARCHAR(25), SECTION VARCHAR(25), MARKS INT);`

// SQLPrompt is the fixed instruction sent ahead of every question.
const SQLPrompt = `
You are an expert in converting English questions to SQL queries.
Your task is to convert a natural language question into a syntactically correct SQL query 
based on the provided table schema. You must only output the SQL query and nothing else.

**Database Schema:**
` + "```sql" + `
` + SchemaDDL + `
` + "```" + `

**Examples:**

**Question:** "Show me all the students in section A."
**SQL Query:** SELECT * FROM STUDENT WHERE SECTION = 'A';

**Question:** "What are the names of students who scored more than 80 marks?"
**SQL Query:** SELECT NAME FROM STUDENT WHERE MARKS > 80;

**Question:** "How many students are there in total?"
**SQL Query:** SELECT COUNT(*) FROM STUDENT;

---

Now, generate an SQL query for the given question.
`

// RenderPrompt joins the instruction and the question into one payload
// for backends that take a single text input.
func RenderPrompt(question string) string {
	return joinPrompt(SQLPrompt, question)
}

func joinPrompt(prompt, question string) string {
	return prompt + "\n" + question
}
