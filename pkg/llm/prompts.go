package llm

import (
	"encoding/json"
	"fmt"

	"github.com/kriti1799/Resume-Builder/pkg/profile"
)

const (
	// maxJobDescriptionChars bounds the job description embedded in prompts.
	maxJobDescriptionChars = 8000
	// maxProfileChars bounds the profile JSON embedded in prompts.
	maxProfileChars = 30000
)

// buildExtractionPrompt creates the conversational extraction prompt.
func buildExtractionPrompt(resumeText string, history []Message, current profile.CandidateProfile) (prompt string) {
	historyJSON, _ := json.MarshalIndent(history, "", "  ")
	currentJSON, _ := json.MarshalIndent(current, "", "  ")

	prompt = fmt.Sprintf(`You are an expert technical recruiter conducting a conversational interview.
Extract the candidate's resume into the exact JSON schema provided.

If critical information is missing, ask for it via "assistant_message".

CRITICAL RULES FOR ASKING QUESTIONS:
1. ONE QUESTION AT A TIME: You MUST ask ONLY ONE single question per turn. Never output a list of questions. Wait for the user to answer the current question before moving to the next missing piece of information.
2. NEVER use robotic phrasing or refer to JSON keys directly (e.g., NEVER ask "What is the experience context for...").
3. Ask natural, conversational questions.
   - Bad: "What is the experience context for Accenture Strategy?"
   - Good: "Could you tell me a bit more about the overarching business problem you were solving during your time at Accenture Strategy?"
   - Bad: "Provide metrics for Nectorr Labs."
   - Good: "What was the quantifiable impact or main result of your work at Nectorr Labs?"
4. Prioritize the most recent or relevant roles first.

Incorporate any new information from the chat history into the profile. Never blank out a field that already holds real data in the current profile; only replace it with equal or better information.

ORIGINAL RESUME TEXT:
%s

CHAT HISTORY (answers from the candidate so far):
%s

CURRENT PROFILE (best known so far; enrich, do not degrade):
%s

Return ONLY valid JSON in this exact format (no markdown, no commentary):
{
  "profile": {
    "personal_info": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "portfolio": ""},
    "education": [{"institution": "", "location": "", "degree": "", "field_of_study": "", "start_date": "", "end_date": "", "gpa": "", "coursework": []}],
    "work_experience": [{"company": "", "location": "", "role": "", "start_date": "", "end_date": "", "bullets": [], "skills_used": [], "metrics": [], "experience_context": ""}],
    "projects": [{"title": "", "description": "", "link": ""}],
    "skills": {"technical": [], "tools": [], "soft_skills": []},
    "publications": [{"title": "", "publisher": "", "date": "", "link": ""}],
    "certifications": [{"name": "", "issuer": "", "date": ""}],
    "application_history": [{"company": "", "role": "", "date_applied": "", "status": ""}]
  },
  "assistant_message": "a SHORT conversational reply ending with EXACTLY ONE question, or empty string if nothing is missing",
  "remaining_questions_count": 0,
  "current_focus_field": "the EXACT top-level JSON key you are currently asking about (e.g. work_experience)",
  "is_complete": false
}

Set "is_complete" to true ONLY if all mandatory fields, metrics, and context are fully populated.
CRITICAL: Ensure all JSON strings are properly escaped. Use \n for newlines, \" for quotes.`,
		truncate(resumeText, maxProfileChars), string(historyJSON), string(currentJSON))

	return prompt
}

// buildEnhancementPrompt creates the Stage 1 content-enhancement prompt.
func buildEnhancementPrompt(profileJSON []byte, jobDescription string) (prompt string) {
	prompt = fmt.Sprintf(`You are an expert resume writer. You will receive structured resume data (JSON) and a job description.

Your task: Produce a single JSON object with ENHANCED resume content that:
1) Is tailored for this specific job and would score highly if scanned by an ATS (use keywords from the job, clear section structure, quantifiable achievements).
2) Uses ONLY information from the source JSON - do not invent any details, dates, or facts.
3) Does NOT change the length of each sentence by a lot - keep roughly the same length so the content still fits on the page. Improve wording and emphasis, not length.
4) Includes ONLY the sections that exist in the source JSON. Do NOT add any section that is not in the source (e.g. do not add summary, objective, or profile if they are not present). Use the same top-level keys as the input (e.g. personal_info, education, work_experience, projects, skills, certifications, publications). If a key is missing or empty in the source, omit it from your output.

Output shape (JSON only, no markdown): use only keys present in the source JSON. Return ONLY valid JSON. No code fence, no explanation.

JOB DESCRIPTION:
%s

SOURCE JSON (only source of content - enhance wording for job and ATS, keep sentence lengths similar):
%s`,
		truncate(jobDescription, maxJobDescriptionChars),
		truncate(string(profileJSON), maxProfileChars))

	return prompt
}

// buildRenderPrompt creates the Stage 2 structure-only template fill prompt.
func buildRenderPrompt(enhancedJSON []byte, template string) (prompt string) {
	prompt = fmt.Sprintf(`You are a LaTeX expert. You will receive (1) enhanced resume content (JSON) and (2) a LaTeX template.

Your task: Produce a complete .tex file where:
- The template is used ONLY for: the preamble (margins, fonts, packages), section HEADERS and formatting (e.g. \section{Education}, \section{Experience}), horizontal lines (\titlerule), and the command definitions (\resumeItem, \resumeSubheading, \resumeProjectHeading, \resumeItemListStart, etc.). Use the template's margins and layout structure.
- Do NOT copy any of the template's example or placeholder BODY text (names, bullet points, company names, etc.). All body content must come from the enhanced content JSON below. Replace every example line with the corresponding enhanced text.
- Fill the document body ONLY with sections that exist in the enhanced content JSON. Do NOT add a Summary, Objective, Profile, or any section that is not present in the JSON. Include: header block (from personal_info), then only those sections that appear in the JSON (education, work_experience, projects, skills, certifications, publications, etc.). Use the same LaTeX commands as the template but with your enhanced text only.

LATEX RULES (required for compilation):
- The text values in the JSON below are ALREADY escaped for LaTeX (\%%, \&, \#, \_, \{, \}). Insert them verbatim; do NOT escape them again and do NOT unescape them.
- Every \resumeItem has one argument: \resumeItem{content}. No unescaped { or } inside the content.

Return ONLY the full LaTeX source from \documentclass to \end{document}. No markdown, no code fence, no explanation.

ENHANCED RESUME CONTENT (use this for all body text; template only for headers/lines/margins/commands):
%s

TEMPLATE (use only for preamble, section headers, lines, margins, and command structure - not for body text):
%s`,
		truncate(string(enhancedJSON), 28000), template)

	return prompt
}

// truncate bounds s to max runes.
func truncate(s string, max int) (out string) {
	out = s
	if len(out) <= max {
		return out
	}
	runes := []rune(out)
	if len(runes) > max {
		out = string(runes[:max])
	}
	return out
}
