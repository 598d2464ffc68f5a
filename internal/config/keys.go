package config

// Jockey chance keys accepted under jockey-chance.
const (
	JockeyBabyZombieChicken          = "baby_zombie_chicken_jockey"
	JockeyBabyHuskChicken            = "baby_husk_chicken_jockey"
	JockeyBabyDrownedChicken         = "baby_drowned_chicken_jockey"
	JockeyBabyZombifiedPiglinChicken = "baby_zombified_piglin_chicken_jockey"
	JockeyBabyZombieVillagerChicken  = "baby_zombie_villager_chicken_jockey"
	JockeyZombieHorse                = "zombie_horse_jockey"
	JockeyHuskCamel                  = "husk_camel_jockey"
	JockeyDrownedNautilus            = "drowned_nautilus_jockey"
	JockeySkeletonSpider             = "skeleton_spider_jockey"
	JockeyStraySpider                = "stray_spider_jockey"
	JockeyWitherSkeletonSpider       = "wither_skeleton_spider_jockey"
	JockeyBoggedSpider               = "bogged_spider_jockey"
	JockeyParchedSpider              = "parched_spider_jockey"
)

// JockeyKeys lists every accepted jockey key.
var JockeyKeys = []string{
	JockeyBabyZombieChicken,
	JockeyBabyHuskChicken,
	JockeyBabyDrownedChicken,
	JockeyBabyZombifiedPiglinChicken,
	JockeyBabyZombieVillagerChicken,
	JockeyZombieHorse,
	JockeyHuskCamel,
	JockeyDrownedNautilus,
	JockeySkeletonSpider,
	JockeyStraySpider,
	JockeyWitherSkeletonSpider,
	JockeyBoggedSpider,
	JockeyParchedSpider,
}

// Entity special keys accepted under spawn-chance.<entity>.special.
const (
	SpecialTridentChanneling = "trident_channeling"
)

var EntitySpecialKeys = []string{SpecialTridentChanneling}

// Default worlds used when enabled-worlds is missing or empty.
var DefaultWorlds = []string{"world", "world_nether", "world_the_end"}

// MaxMultiplier bounds mob-spawn.multiplier; every copy is spawned inside one
// notification.
const MaxMultiplier = 64
