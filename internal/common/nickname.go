package common

import (
	"fmt"
	"math/rand"

	"github.com/gosimple/slug"
)

var (
	nicknameAdjectives = []string{"brave", "calm", "clever", "eager", "gentle", "jolly", "lucky", "mighty", "noble", "swift"}
	nicknameAnimals    = []string{"badger", "falcon", "fox", "heron", "lynx", "otter", "panda", "raven", "tiger", "wolf"}
)

// GenerateNickname returns a URL-safe nickname such as "clever-fox-1234".
// Uniqueness is not guaranteed here; callers re-check against the store.
func GenerateNickname() string {
	adjective := nicknameAdjectives[rand.Intn(len(nicknameAdjectives))]
	animal := nicknameAnimals[rand.Intn(len(nicknameAnimals))]
	return slug.Make(fmt.Sprintf("%s %s %d", adjective, animal, rand.Intn(10000)))
}
