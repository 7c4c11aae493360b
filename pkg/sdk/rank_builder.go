package tierank

import "context"

// RankBuilder is a fluent builder for Client.Rank.
type RankBuilder struct {
	client *Client
	req    RankRequest
}

// Query starts a ranking request for q.
func (c *Client) Query(q string) *RankBuilder {
	return &RankBuilder{
		client: c,
		req:    RankRequest{Query: q, Candidates: make(map[Kind][]Document)},
	}
}

// Candidates appends docs to the kind's candidate list.
func (b *RankBuilder) Candidates(kind Kind, docs ...Document) *RankBuilder {
	b.req.Candidates[kind] = append(b.req.Candidates[kind], docs...)
	return b
}

// Movies appends movie candidates.
func (b *RankBuilder) Movies(docs ...Document) *RankBuilder { return b.Candidates(KindMovie, docs...) }

// TV appends TV show candidates.
func (b *RankBuilder) TV(docs ...Document) *RankBuilder { return b.Candidates(KindTV, docs...) }

// Podcasts appends podcast candidates.
func (b *RankBuilder) Podcasts(docs ...Document) *RankBuilder { return b.Candidates(KindPodcast, docs...) }

// People appends person candidates.
func (b *RankBuilder) People(docs ...Document) *RankBuilder { return b.Candidates(KindPerson, docs...) }

// Books appends book candidates.
func (b *RankBuilder) Books(docs ...Document) *RankBuilder { return b.Candidates(KindBook, docs...) }

// Authors appends author candidates.
func (b *RankBuilder) Authors(docs ...Document) *RankBuilder { return b.Candidates(KindAuthor, docs...) }

// Limit caps the hits returned per domain.
func (b *RankBuilder) Limit(n int) *RankBuilder {
	b.req.Limit = n
	return b
}

// Do executes the ranking.
func (b *RankBuilder) Do(ctx context.Context) (RankResult, error) {
	return b.client.Rank(ctx, b.req)
}

// Hero executes the ranking and returns only the promoted hit, or nil.
func (b *RankBuilder) Hero(ctx context.Context) (*Hero, error) {
	res, err := b.Do(ctx)
	if err != nil {
		return nil, err
	}
	return res.Hero, nil
}
