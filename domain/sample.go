package domain

import (
	"fmt"
	"time"
)

type samplePost struct {
	id       string
	author   Author
	caption  string
	age      time.Duration
	likes    int
	imageURL string
}

var samplePosts = []samplePost{
	{
		id: "1",
		author: Author{
			Name:      "Sarah Johnson",
			AvatarURL: "https://picsum.photos/seed/bizfeed-avatar-1/96",
			Headline:  "Owner at Harbor Street Bakery | Sourdough Enthusiast",
		},
		caption:  "We just opened our second location on Harbor Street! The build-out took eight months and a lot of flour-dusted weekends, and I couldn't be more proud of the team that made it happen. Come say hi, first coffee is on us all week.",
		age:      2 * time.Hour,
		likes:    142,
		imageURL: "https://picsum.photos/seed/bizfeed-1/640/400",
	},
	{
		id: "2",
		author: Author{
			Name:      "Michael Chen",
			AvatarURL: "https://picsum.photos/seed/bizfeed-avatar-2/96",
			Headline:  "Founder, Chen & Daughters Hardware | Third Generation",
		},
		caption:  "Forty years on the same corner. Lesson learned: growth isn't only about more foot traffic, it's about building a store that can change with the neighborhood. Thank you to every customer who asked us for something we didn't stock yet.",
		age:      5 * time.Hour,
		likes:    89,
		imageURL: "https://picsum.photos/seed/bizfeed-2/640/400",
	},
	{
		id: "3",
		author: Author{
			Name:      "Emily Rodriguez",
			AvatarURL: "https://picsum.photos/seed/bizfeed-avatar-3/96",
			Headline:  "Studio Lead at Northline Design | Accessible Storefronts",
		},
		caption:  "Tip of the day for shop owners: plan step-free entry and readable signage from the start, not as an afterthought. Your customers will thank you for it!",
		age:      24 * time.Hour,
		likes:    234,
		imageURL: "https://picsum.photos/seed/bizfeed-3/640/400",
	},
	{
		id: "4",
		author: Author{
			Name:      "David Kim",
			AvatarURL: "https://picsum.photos/seed/bizfeed-avatar-4/96",
			Headline:  "Operations at Kim's Auto Care | Mentor | Speaker",
		},
		caption:  "Had a good conversation with the crew today about deferred maintenance on our own equipment. It's not about fixing everything on day one, it's about making conscious decisions and writing them down.",
		age:      48 * time.Hour,
		likes:    176,
		imageURL: "https://picsum.photos/seed/bizfeed-4/640/400",
	},
}

// SamplePosts returns n mock posts by cycling the four sample businesses.
// Every cycle after the first gets an id suffix so ids stay unique.
func SamplePosts(n int, now time.Time) []Post {
	if n <= 0 {
		return nil
	}
	out := make([]Post, 0, n)
	for i := range n {
		base := samplePosts[i%len(samplePosts)]
		cycle := i / len(samplePosts)
		id := base.id
		if cycle > 0 {
			id = fmt.Sprintf("%s-%d", base.id, cycle)
		}
		out = append(out, Post{
			ID:        id,
			Author:    base.author,
			Caption:   base.caption,
			CreatedAt: now.Add(-base.age - time.Duration(cycle)*time.Minute),
			Likes:     base.likes,
			ImageURL:  base.imageURL,
		})
	}
	return out
}
