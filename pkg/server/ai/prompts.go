/* Copyright 2025 StudyFlow Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ai

import "fmt"

// Prompt is a pair of instructions for a single generation call
type Prompt struct {
	System string
	User   string
}

// SummaryPrompt builds the prompt for summarizing note content
func SummaryPrompt(noteContent string) Prompt {
	return Prompt{
		System: "You are an educational assistant who summarizes academic study notes in a clear, concise, and structured way. Your goal is to help students understand and retain the key concepts.",
		User: fmt.Sprintf(`Analyze the following study notes and produce a structured summary.

NOTES:
%s

The summary must include:
- **Key concepts**: The 3-5 most important points
- **Supporting ideas**: Relevant details that back up the key concepts
- **Conclusion**: A short synthesis connecting everything

Use Markdown with headings and bullet points. Be clear and direct.`, noteContent),
	}
}

// FlashcardsPrompt builds the prompt for generating flashcards
func FlashcardsPrompt(noteContent string) Prompt {
	return Prompt{
		System: "You are an expert at creating effective study flashcards for memorization. Flashcards must be concise, clear, and focused on a single concept per card.",
		User: fmt.Sprintf(`From these study notes, generate 8-10 quality flashcards in JSON format.

NOTES:
%s

Criteria for the flashcards:
- Each card must focus on ONE concept only
- The question must be clear and specific
- The answer must be concise but complete
- Vary the difficulty (easy, medium, hard)
- Cover key concepts, definitions, and important relationships

Response format (JSON array):
[
  {
    "front": "Question or concept to recall",
    "back": "Complete answer or definition",
    "difficulty": "easy|medium|hard"
  }
]

IMPORTANT: Respond ONLY with the JSON array, with no additional text before or after.`, noteContent),
	}
}

// QuizPrompt builds the prompt for generating a mixed quiz
func QuizPrompt(noteContent string) Prompt {
	return Prompt{
		System: "You are an experienced teacher who writes exams that test real comprehension, not just memorization. Questions must be challenging but fair.",
		User: fmt.Sprintf(`Generate a quiz of 8 varied questions based on these study notes.

NOTES:
%s

Criteria for the quiz:
- 5 multiple choice questions with 4 options (A, B, C, D)
- 3 true/false questions
- Only ONE correct option per question
- Incorrect options must be plausible (not obvious)
- Include an explanation of why the answer is correct
- Vary the question style: definitions, application, analysis
- VERY IMPORTANT: correct answers must land in DIFFERENT positions. Do NOT put every correct answer in option A or in the same position. Distribute the correct answers randomly across the options (0-3 for multiple choice, 0-1 for true/false).

Response format (JSON array):
[
  {
    "type": "multiple",
    "question": "Question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Detailed explanation"
  },
  {
    "type": "truefalse",
    "question": "Statement to evaluate",
    "options": ["True", "False"],
    "correctAnswer": 0,
    "explanation": "Why the statement is true or false"
  }
]

The "correctAnswer" field is the index of the correct option (0-3 for multiple, 0-1 for truefalse).
The "type" field must be "multiple" or "truefalse".

IMPORTANT: Respond ONLY with the JSON array, with no additional text before or after.`, noteContent),
	}
}

// ShortAnswerPrompt builds the prompt for generating short answer questions
func ShortAnswerPrompt(noteContent string) Prompt {
	return Prompt{
		System: "You are a teacher who writes open-ended questions to assess deep understanding. Questions must require elaborated answers, not just definitions.",
		User: fmt.Sprintf(`Generate 5 short answer questions based on these study notes.

NOTES:
%s

Criteria for the questions:
- They require answers of 2-4 sentences (50-100 words)
- They assess deep understanding, not just memorization
- They use verbs such as: explain, compare, analyze, describe, justify
- Each question must include a model answer for reference
- Vary the difficulty across the questions

Response format (JSON array):
[
  {
    "question": "Question requiring an elaborated answer",
    "rubric": "Evaluation criteria for the answer",
    "modelAnswer": "Reference model answer (2-4 sentences)"
  }
]

IMPORTANT: Respond ONLY with the JSON array, with no additional text before or after.`, noteContent),
	}
}

// GradePrompt builds the prompt for grading a student's short answer
func GradePrompt(question, rubric, modelAnswer, studentAnswer string) Prompt {
	return Prompt{
		System: "You are a fair teacher grading student answers. Provide constructive and specific feedback.",
		User: fmt.Sprintf(`Evaluate the following student answer.

QUESTION:
%s

EVALUATION CRITERIA:
%s

MODEL ANSWER:
%s

STUDENT ANSWER:
%s

Evaluate the student's answer and provide:
1. A score (0-100)
2. Specific feedback on what is right and what is missing
3. Suggestions for improvement

Response format (JSON):
{
  "score": 85,
  "feedback": "Your answer correctly identifies the main concepts...",
  "suggestions": "To improve, you could include more detail about..."
}

IMPORTANT: Respond ONLY with the JSON object, with no additional text before or after.`, question, rubric, modelAnswer, studentAnswer),
	}
}

// PromptForType builds the generation prompt for the given content type.
// It returns false if the type is unknown.
func PromptForType(contentType, noteContent string) (Prompt, bool) {
	switch contentType {
	case "summary":
		return SummaryPrompt(noteContent), true
	case "flashcards":
		return FlashcardsPrompt(noteContent), true
	case "quiz":
		return QuizPrompt(noteContent), true
	case "shortanswer":
		return ShortAnswerPrompt(noteContent), true
	}

	return Prompt{}, false
}
