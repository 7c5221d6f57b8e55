package quizgen

import "github.com/devsphere/quizapi/internal/api/domain"

// seedBank holds the static per-language question banks used when no LLM is
// configured, and as the fallback when generation fails.
var seedBank = map[string][]domain.Question{
	"java": {
		{
			Question:      "What is the correct way to declare a variable in Java?",
			Options:       []string{"var x = 10;", "int x = 10;", "x := 10;", "declare x = 10;"},
			CorrectAnswer: 1,
			Explanation:   "In Java, you must specify the data type when declaring a variable. 'int x = 10;' is the correct syntax for declaring an integer variable.",
		},
		{
			Question:      "Which keyword is used to inherit a class in Java?",
			Options:       []string{"implements", "extends", "inherits", "super"},
			CorrectAnswer: 1,
			Explanation:   "The 'extends' keyword is used in Java to inherit from a parent class. 'implements' is used for interfaces.",
		},
	},
	"python": {
		{
			Question:      "How do you declare a list in Python?",
			Options:       []string{"list = {}", "list = []", "list = ()", "list = <>"},
			CorrectAnswer: 1,
			Explanation:   "Square brackets [] define lists in Python.",
		},
		{
			Question:      "What is the output of print(2 ** 3)?",
			Options:       []string{"6", "8", "9", "Error"},
			CorrectAnswer: 1,
			Explanation:   "The ** operator performs exponentiation; 2**3 = 8.",
		},
	},
	"typescript": {
		{
			Question:      "How do you declare a typed variable in TypeScript?",
			Options:       []string{"let x: number = 5;", "var x = number(5);", "int x = 5;", "x := 5"},
			CorrectAnswer: 0,
			Explanation:   "Use type annotations like : number after the variable name.",
		},
		{
			Question:      "Which of these enables strict type checking?",
			Options:       []string{"tsconfig: \"strict\": true", "use strict", "--types=strict", "@strict"},
			CorrectAnswer: 0,
			Explanation:   "Set \"strict\": true in tsconfig.json for strict mode.",
		},
	},
	"javascript": {
		{
			Question:      "Which method converts a JSON string to an object?",
			Options:       []string{"JSON.toObject", "JSON.parse", "Object.fromJSON", "parseJSON"},
			CorrectAnswer: 1,
			Explanation:   "Use JSON.parse to convert a JSON string into an object.",
		},
		{
			Question:      "What is the result of typeof null?",
			Options:       []string{"'null'", "'object'", "'undefined'", "'number'"},
			CorrectAnswer: 1,
			Explanation:   "typeof null returns 'object' due to historical reasons.",
		},
	},
	"html": {
		{
			Question:      "Which tag defines a hyperlink?",
			Options:       []string{"<link>", "<a>", "<href>", "<url>"},
			CorrectAnswer: 1,
			Explanation:   "The <a> tag defines a hyperlink in HTML.",
		},
		{
			Question:      "Which attribute specifies an image source?",
			Options:       []string{"href", "src", "alt", "title"},
			CorrectAnswer: 1,
			Explanation:   "Use the src attribute on <img> to specify the image source.",
		},
	},
	"css": {
		{
			Question:      "Which property sets the flex container direction?",
			Options:       []string{"flex-direction", "direction", "flex-flow", "justify-content"},
			CorrectAnswer: 0,
			Explanation:   "flex-direction sets the direction of flex items.",
		},
		{
			Question:      "How do you apply a class selector?",
			Options:       []string{".myClass { }", "#myClass { }", "myClass { }", "*myClass { }"},
			CorrectAnswer: 0,
			Explanation:   "Class selectors use a dot: .myClass { ... }.",
		},
	},
	"csharp": {
		{
			Question:      "Which keyword defines a class in C#?",
			Options:       []string{"class", "struct", "type", "object"},
			CorrectAnswer: 0,
			Explanation:   "Use the class keyword to define a class.",
		},
		{
			Question:      "Which access modifier makes a member accessible only within its class?",
			Options:       []string{"public", "private", "protected", "internal"},
			CorrectAnswer: 1,
			Explanation:   "private limits access to the containing class.",
		},
	},
	"go": {
		{
			Question:      "Which keyword declares a function in Go?",
			Options:       []string{"func", "function", "def", "fn"},
			CorrectAnswer: 0,
			Explanation:   "Go uses func to declare functions.",
		},
		{
			Question:      "What is the zero value of an int in Go?",
			Options:       []string{"1", "0", "nil", "undefined"},
			CorrectAnswer: 1,
			Explanation:   "int zero value in Go is 0.",
		},
	},
}

// synthesize builds a quiz of the requested size by cycling the seed
// questions. Each entry is a copy so callers can mutate freely.
func synthesize(seed []domain.Question, total int) []domain.Question {
	out := make([]domain.Question, 0, total)
	for i := 0; i < total; i++ {
		q := seed[i%len(seed)]
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q)
	}
	return out
}
