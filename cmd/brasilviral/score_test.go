package main

import "testing"

func TestCalculateViralScoreTitleLengthOnly(t *testing.T) {
	// Seven plain words, no digits, no trending, no emotional words.
	title := "Governo federal anuncia novas medidas para setor"
	score := CalculateViralScore(title, "conteúdo neutro", nil)
	if score != 15 {
		t.Errorf("expected score 15, got %d", score)
	}
}

func TestCalculateViralScoreTrendingTopics(t *testing.T) {
	topics := []string{"copa do mundo", "eleições"}
	title := "Copa do Mundo terá novidade"
	content := "As eleições também foram citadas na cobertura."

	score := CalculateViralScore(title, content, topics)
	// 20 for topic in title, 10 for topic in body only.
	if score < 30 {
		t.Errorf("expected at least 30, got %d", score)
	}
}

func TestCalculateViralScoreDigitsAndEmotion(t *testing.T) {
	title := "Chocante: 5 fatos sobre o caso revelado agora"
	score := CalculateViralScore(title, "", nil)
	// 15 (8 words) + 10 (digit) + 5 (chocante) + 5 (revelado).
	if score != 35 {
		t.Errorf("expected 35, got %d", score)
	}
}

func TestCalculateViralScoreCapped(t *testing.T) {
	topics := []string{"a", "b", "c", "d", "e", "f"}
	title := "incrível chocante surpreendente a b c d e f 123"
	score := CalculateViralScore(title, title, topics)
	if score != 100 {
		t.Errorf("expected cap at 100, got %d", score)
	}
}

func TestCalculateViralScoreEmptyInputs(t *testing.T) {
	if score := CalculateViralScore("", "", nil); score != 0 {
		t.Errorf("expected 0 for empty inputs, got %d", score)
	}
}

func TestCalculateViralScoreMixedCaseTopic(t *testing.T) {
	// Topic matching must not depend on the caller lowercasing first.
	if score := CalculateViralScore("Dólar sobe", "", []string{"Dólar"}); score != 20 {
		t.Errorf("expected 20 for title match, got %d", score)
	}
	if score := CalculateViralScore("Sem relação", "o DÓLAR disparou", []string{"Dólar"}); score != 10 {
		t.Errorf("expected 10 for content match, got %d", score)
	}
}
