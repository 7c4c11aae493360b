package rank

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

type personView struct {
	rawName string
	name    string
}

var personRules = []rule[personView]{
	{0, "raw_name", func(q *Query, v *personView) bool { return q.rawEquals(v.rawName) }},
	{1, "name", func(q *Query, v *personView) bool { return q.norm == v.name }},
	{2, "name_token", func(q *Query, v *personView) bool { return textnorm.HasToken(v.name, q.norm) }},
	{3, "name_substring", func(q *Query, v *personView) bool { return strings.Contains(v.name, q.norm) }},
	{4, "name_prefix", func(q *Query, v *personView) bool { return strings.HasPrefix(v.name, q.norm) }},
}

// ScorePerson ranks a person document against q. Among equal tiers shorter
// names win before popularity is consulted.
func ScorePerson(q *Query, d *document.Person) rank.PersonKey {
	key, _ := scorePerson(q, d)
	return key
}

func scorePerson(q *Query, d *document.Person) (rank.PersonKey, string) {
	v := personView{rawName: d.Name, name: textnorm.Normalize(d.Name)}
	tier, name := evaluate(personRules, q, &v, rank.PersonFallback)
	return rank.PersonKey{
		Tier:       tier,
		NameLength: utf8.RuneCountInString(d.Name),
		Popularity: d.Popularity,
	}, name
}
