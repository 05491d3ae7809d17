package catalog

import "cappy/internal/core"

func builtinIdeas() []core.Idea {
	return []core.Idea{
		{
			ID: "1", Title: "If You Were an Animal...",
			Description: "If you were an animal, which one would you be and why?",
			Category:    core.CategoryQuestion,
			Tags:        []string{"creative", "fun", "universal"},
			Difficulty:  1, EstimatedMinutes: 2,
		},
		{
			ID: "2", Title: "Useless Superpower",
			Description: "If you could have a useless superpower, what would it be?",
			Category:    core.CategoryQuestion,
			Tags:        []string{"creative", "fun", "imaginative"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "3", Title: "Weather and Mood",
			Description: "How does today's weather affect your mood?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"weather", "mood", "personal"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "4", Title: "Outdoor Plan",
			Description: "What would be the perfect outdoor activity for today's weather?",
			Category:    core.CategoryQuestion,
			Tags:        []string{"weather", "sunny", "activity", "outdoors"},
			Difficulty:  1, EstimatedMinutes: 2,
		},
		{
			ID: "5", Title: "Cold Weather Comfort",
			Description: "What's your favorite food for cold days?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"weather", "cold", "food", "comfort"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "6", Title: "Rainy Sunday",
			Description: "How do you like to spend a cold, rainy Sunday?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"weather", "rainy", "sunday", "relaxing"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "7", Title: "Morning Energy",
			Description: "How do you like to start your mornings?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"morning", "routine", "energy"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "8", Title: "Afternoon Ritual",
			Description: "What's your favorite ritual to recharge in the afternoon?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"afternoon", "ritual", "energy"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "9", Title: "Sunday Afternoon",
			Description: "What do you enjoy doing on Sunday afternoons?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"afternoon", "sunday", "relaxing"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "10", Title: "Tonight's Plan",
			Description: "If you could do anything tonight, what would it be?",
			Category:    core.CategoryQuestion,
			Tags:        []string{"evening", "plans", "fun"},
			Difficulty:  1, EstimatedMinutes: 2,
		},
		{
			ID: "11", Title: "Local Slang",
			Description: "What's the most typical expression from where you grew up?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"culture", "regional", "language"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "12", Title: "Regional Dish",
			Description: "Which typical dish from your region do you like the most?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"culture", "food", "regional"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "13", Title: "Subway Stories",
			Description: "What was your most interesting experience on the São Paulo subway?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"paulista", "subway", "transport"},
			Difficulty:  2, EstimatedMinutes: 4,
		},
		{
			ID: "14", Title: "Favorite Neighborhood",
			Description: "What's your favorite neighborhood in São Paulo and why?",
			Category:    core.CategoryQuestion,
			Tags:        []string{"paulista", "neighborhood", "city"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "15", Title: "São Paulo in Winter",
			Description: "What do you like doing most in São Paulo during winter?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"paulista", "winter", "city", "weather"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "16", Title: "Coffee Spot",
			Description: "Where's your favorite place to grab a coffee in São Paulo?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"paulista", "coffee", "city", "food"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "17", Title: "Beach Day",
			Description: "Which beach in Rio is your favorite and what do you love about it?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"carioca", "beach", "rio"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "18", Title: "Mineiro Breakfast",
			Description: "What's your favorite breakfast from Minas Gerais?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"mineira", "coffee", "food", "morning"},
			Difficulty:  1, EstimatedMinutes: 3,
		},
		{
			ID: "19", Title: "Truth or Dare",
			Description: "Start a light, fun round of truth or dare.",
			Category:    core.CategoryGame,
			Tags:        []string{"game", "interactive", "fun"},
			Difficulty:  2, EstimatedMinutes: 5,
		},
		{
			ID: "20", Title: "Two Truths and a Lie",
			Description: "Share three facts about yourself, two true and one false. Let the others guess!",
			Category:    core.CategoryGame,
			Tags:        []string{"game", "knowledge", "fun"},
			Difficulty:  2, EstimatedMinutes: 8,
		},
		{
			ID: "21", Title: "Compliment Challenge",
			Description: "Give a sincere compliment to the person next to you.",
			Category:    core.CategoryChallenge,
			Tags:        []string{"positive", "connection", "kindness"},
			Difficulty:  1, EstimatedMinutes: 2,
		},
		{
			ID: "22", Title: "Connection Challenge",
			Description: "Find something in common with the person next to you in 30 seconds.",
			Category:    core.CategoryChallenge,
			Tags:        []string{"connection", "quick", "interactive"},
			Difficulty:  2, EstimatedMinutes: 1,
		},
		{
			ID: "23", Title: "Life Soundtrack",
			Description: "If your life were a movie, which song would be on the soundtrack?",
			Category:    core.CategoryQuestion,
			Tags:        []string{"music", "personal", "creative"},
			Difficulty:  2, EstimatedMinutes: 4,
		},
		{
			ID: "24", Title: "Offline Day",
			Description: "When was the last time you stayed offline for a whole day?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"technology", "reflection", "current"},
			Difficulty:  2, EstimatedMinutes: 4,
		},
		{
			ID: "25", Title: "Dream Trip",
			Description: "What's the most unexpected place you've ever been to?",
			Category:    core.CategoryConversationTopic,
			Tags:        []string{"travel", "adventure", "personal"},
			Difficulty:  2, EstimatedMinutes: 4,
		},
		{
			ID: "26", Title: "Playlist Swap",
			Description: "Everyone picks one song for a shared playlist and explains the choice.",
			Category:    core.CategoryInteractiveActivity,
			Tags:        []string{"music", "interactive", "evening"},
			Difficulty:  1, EstimatedMinutes: 6,
		},
		{
			ID: "27", Title: "Map Your Journey",
			Description: "Draw a quick map of the places you've lived and share one story from each.",
			Category:    core.CategoryInteractiveActivity,
			Tags:        []string{"travel", "interactive", "personal"},
			Difficulty:  2, EstimatedMinutes: 10,
		},
		{
			ID: "28", Title: "Late-Night Thoughts",
			Description: "What's a question you only think about late at night?",
			Category:    core.CategoryQuestion,
			Tags:        []string{"late-night", "reflection", "personal"},
			Difficulty:  3, EstimatedMinutes: 5,
		},
	}
}
