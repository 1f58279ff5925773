// Package fallback provides the static substitute data returned when the
// upstream backend is unreachable. Reads only; writes have no fallback.
package fallback

import "quiz-portal/internal/domain"

// Categories returns the fixed category list.
func Categories() []string {
	return []string{"General", "Machine Learning", "Data Science", "Programming"}
}

// Quizzes returns the fixed two-entry quiz summary list.
func Quizzes() []domain.QuizSummary {
	return []domain.QuizSummary{
		{
			ID:          1,
			Title:       "Machine Learning Fundamentals",
			Description: "Test your knowledge of ML basics and concepts",
			CreatedAt:   "2024-01-15T10:00:00Z",
		},
		{
			ID:          2,
			Title:       "Data Science Basics",
			Description: "Fundamental concepts in data science and analytics",
			CreatedAt:   "2024-01-10T14:30:00Z",
		},
	}
}

// Quiz synthesizes a fully populated five-question quiz for any id. The
// well-known id 1 keeps its original title; every other id gets the generic
// one. The requested id is echoed back so links keep working offline.
func Quiz(id int) domain.Quiz {
	title := "Data Science Quiz"
	if id == 1 {
		title = "Machine Learning Fundamentals"
	}
	return domain.Quiz{
		ID:          id,
		Title:       title,
		Description: "Test your knowledge with this comprehensive quiz",
		Questions: []domain.Question{
			{
				ID:            1,
				Text:          "What is the primary focus of Machine Learning (ML)?",
				OptionA:       "Programming computers with explicit instructions",
				OptionB:       "Building systems that learn from data and improve performance over time",
				OptionC:       "Developing hardware components for computer systems",
				OptionD:       "Creating static models for data storage",
				CorrectAnswer: domain.LabelB,
			},
			{
				ID:            2,
				Text:          "Which of the following is NOT an application powered by Machine Learning?",
				OptionA:       "Spam detection in emails",
				OptionB:       "Product recommendations on e-commerce platforms",
				OptionC:       "Manually writing code for a specific task",
				OptionD:       "Fraud detection in banking",
				CorrectAnswer: domain.LabelC,
			},
			{
				ID:            3,
				Text:          "What type of Machine Learning involves training models on labeled data?",
				OptionA:       "Unsupervised learning",
				OptionB:       "Reinforcement learning",
				OptionC:       "Supervised learning",
				OptionD:       "Deep learning",
				CorrectAnswer: domain.LabelC,
			},
			{
				ID:            4,
				Text:          "What is a key challenge associated with Machine Learning?",
				OptionA:       "The lack of available programming languages",
				OptionB:       "The need for high-quality data and computational resources",
				OptionC:       "The simplicity of the algorithms involved",
				OptionD:       "The lack of potential applications",
				CorrectAnswer: domain.LabelB,
			},
			{
				ID:            5,
				Text:          "What allows systems to learn through trial and error by receiving rewards or penalties for their actions?",
				OptionA:       "Supervised Learning",
				OptionB:       "Unsupervised Learning",
				OptionC:       "Reinforcement Learning",
				OptionD:       "Deep Learning",
				CorrectAnswer: domain.LabelC,
			},
		},
	}
}

// Leaderboard returns the empty-but-renderable leaderboard used when the
// backend cannot serve rankings.
func Leaderboard() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{}
}
