package corrective

// Default prompts for the LLM-backed stages. All structured prompts demand
// JSON-only replies; the shared decode path tolerates code-fence wrappers.

const defaultSystemPrompt = `You are StudyMate, a friendly and knowledgeable AI study assistant designed for students.

Your role:
- Help students understand and learn from their study materials
- Provide clear, accurate explanations based only on the provided context
- Encourage critical thinking and deeper understanding
- Be patient, supportive, and encouraging
- Stay focused on educational content and academic success

Guidelines:
- Always base your answers on the provided study material context
- If the context doesn't fully answer the question, acknowledge this and suggest what additional information might help
- Use simple, clear language that students can easily understand
- Promote academic integrity and honest learning`

const generationPromptTemplate = `Based on the study material content below, answer the student's question.

STUDY MATERIAL:
%s

STUDENT QUESTION: %s

Important: Base your answer ONLY on the provided material. If the content doesn't fully answer the question, acknowledge this and suggest the student consult additional resources or their teacher.

YOUR ANSWER:`

const evaluationPromptTemplate = `Evaluate how well this retrieved context answers the student's question.

STUDENT QUESTION: %s

RETRIEVED CONTEXT:
%s

Evaluate on 3 criteria (score 0.0 to 1.0):
1. RELEVANCE: How directly related is the context to the question?
2. COMPLETENESS: Does the context provide enough information to fully answer?
3. CLARITY: Is the context clear and understandable for students?

Respond in JSON only:
{"relevance_score": <0.0-1.0>, "completeness_score": <0.0-1.0>, "clarity_score": <0.0-1.0>, "reasoning": "<brief explanation>"}`

const refinePromptTemplate = `The student's question didn't find good answers in the study material. Improve the search query.

ORIGINAL QUESTION: %s

PROBLEM: %s

Create a better search query that:
- Uses specific keywords from the subject matter
- Is more focused and precise
- Would likely find better matching content in educational materials

Return ONLY the improved query (no explanation):`

const semanticExpandPromptTemplate = `Expand this student question with related educational concepts and synonyms.

Question: %s

Add related terms, concepts, and educational keywords that would help find relevant study material.

Expanded query:`

const crossDomainPromptTemplate = `Find analogous or related concepts in other academic subjects that could help explain this topic.

Question: %s

Think of related concepts from other subjects (math, science, history, literature, etc.) that might have similar principles or explanations.

Related concepts:`

// keywordExpansionTerms are appended verbatim for the secondary strategy; no
// model call involved.
const keywordExpansionTerms = "definition explanation example concept theory principle"

// NoAnswerMessage is returned when the primary retrieval finds nothing at all.
const NoAnswerMessage = "I couldn't find any relevant information in your study materials. Please make sure you've uploaded a document and try rephrasing your question."
