package ingest

import "github.com/studymate-ai/studymate/rag/document"

// SampleDocuments returns a small built-in study corpus used by the demo
// command and the end-to-end tests. It covers one grammar, one math, and one
// science topic so escalation behavior can be exercised without uploads.
func SampleDocuments() []document.Document {
	docs := []document.Document{
		{
			Title: "English Grammar Basics",
			Content: "A noun is a word that names a person, place, thing, or idea. " +
				"Common nouns name general items, such as city, teacher, or happiness, " +
				"while proper nouns name specific ones, such as Paris or Maria, and are capitalized. " +
				"Nouns can be singular or plural, and many plurals are formed by adding -s or -es. " +
				"In a sentence, a noun can act as the subject, the object of a verb, or the object of a preposition.\n\n" +
				"A verb is a word that expresses an action or a state of being. " +
				"Action verbs describe something a subject does, such as run, write, or think. " +
				"Linking verbs, such as be, seem, and become, connect the subject to more information about it. " +
				"Every complete sentence needs at least one verb.",
			Metadata: map[string]any{"subject": "english", "section": "Grammar Basics"},
		},
		{
			Title: "Introduction to Fractions",
			Content: "A fraction represents a part of a whole. " +
				"It is written as one number above another, separated by a line: the numerator on top " +
				"tells how many parts are taken, and the denominator below tells how many equal parts the whole is divided into. " +
				"For example, 3/4 means three of four equal parts.\n\n" +
				"To add fractions with the same denominator, add the numerators and keep the denominator. " +
				"To add fractions with different denominators, first rewrite them with a common denominator.",
			Metadata: map[string]any{"subject": "math", "section": "Fractions"},
		},
		{
			Title: "The Water Cycle",
			Content: "The water cycle describes how water moves between the earth and the atmosphere. " +
				"Evaporation turns liquid water from oceans and lakes into vapor. " +
				"The vapor rises, cools, and condenses into clouds. " +
				"When the droplets grow heavy enough, they fall as precipitation, such as rain or snow. " +
				"The water then collects in rivers, lakes, and groundwater, and the cycle begins again.",
			Metadata: map[string]any{"subject": "science", "section": "The Water Cycle"},
		},
	}
	for i := range docs {
		document.EnsureDocumentID(&docs[i])
	}
	return docs
}
