package quality

import (
	"fmt"
	"testing"

	"github.com/seenimoa/tickersense/pkg/models"
)

func substantiveArticle(i int) models.Article {
	return models.Article{
		Title:       fmt.Sprintf("Company posts Q%d earnings beat", i%4+1),
		Description: fmt.Sprintf("Revenue rose 1%d%% year over year on strong product sales.", i%9),
	}
}

func thinArticle(i int) models.Article {
	return models.Article{
		Title: fmt.Sprintf("Markets open mixed, story %c", 'a'+rune(i%26)),
	}
}

func TestAssessInsufficient(t *testing.T) {
	if got := Assess(nil); got != models.DataQualityInsufficient {
		t.Errorf("Assess(nil) = %q, want insufficient", got)
	}
	if got := Assess([]models.Article{substantiveArticle(0)}); got != models.DataQualityInsufficient {
		t.Errorf("1 article = %q, want insufficient", got)
	}
	two := []models.Article{substantiveArticle(0), substantiveArticle(1)}
	if got := Assess(two); got != models.DataQualityInsufficient {
		t.Errorf("2 articles = %q, want insufficient", got)
	}
}

func TestAssessHigh(t *testing.T) {
	var articles []models.Article
	for i := 0; i < 6; i++ {
		articles = append(articles, substantiveArticle(i))
	}
	for i := 0; i < 4; i++ {
		articles = append(articles, thinArticle(i))
	}
	if got := Assess(articles); got != models.DataQualityHigh {
		t.Errorf("10 articles, 6 substantive = %q, want high", got)
	}
}

func TestAssessMediumByRatio(t *testing.T) {
	articles := []models.Article{
		substantiveArticle(0),
		substantiveArticle(1),
		thinArticle(0),
		thinArticle(1),
		thinArticle(2),
	}
	if got := Assess(articles); got != models.DataQualityMedium {
		t.Errorf("5 articles, 2 substantive = %q, want medium", got)
	}
}

func TestAssessMediumBySubstantiveFloor(t *testing.T) {
	articles := []models.Article{
		substantiveArticle(0),
		substantiveArticle(1),
		thinArticle(0),
	}
	if got := Assess(articles); got != models.DataQualityMedium {
		t.Errorf("3 articles, 2 substantive = %q, want medium", got)
	}
}

func TestAssessLow(t *testing.T) {
	articles := []models.Article{
		thinArticle(0),
		thinArticle(1),
		thinArticle(2),
		substantiveArticle(0),
	}
	if got := Assess(articles); got != models.DataQualityLow {
		t.Errorf("4 articles, 1 substantive = %q, want low", got)
	}
}

func TestIsSubstantive(t *testing.T) {
	cases := []struct {
		name    string
		article models.Article
		want    bool
	}{
		{
			name:    "digits plus financial term",
			article: models.Article{Title: "Revenue up 12% in Q3"},
			want:    true,
		},
		{
			name:    "digits without financial term",
			article: models.Article{Title: "3 things to watch today"},
			want:    false,
		},
		{
			name:    "financial term without digits",
			article: models.Article{Title: "Earnings season kicks off"},
			want:    false,
		},
		{
			name: "long description without figures",
			article: models.Article{
				Title:       "Leadership shakeup",
				Description: "The chief executive announced a sweeping reorganization of the leadership team, consolidating several divisions under a single operating unit.",
			},
			want: true,
		},
		{
			name:    "short headline only",
			article: models.Article{Title: "Markets open mixed"},
			want:    false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSubstantive(tc.article); got != tc.want {
				t.Errorf("IsSubstantive = %v, want %v", got, tc.want)
			}
		})
	}
}
