package config

const sampleYAML = `
version: "7"
enabled-worlds: [world, arena]
light-threshold: 7
mob-spawn:
  multiplier: 2.5
  enable-spawn-egg: false
enchant-chance:
  weapon: 0.25
  armor: 0.5
replacement-toggles:
  apply-to-natural: true
  apply-to-spawner: true
jockey-chance:
  baby_zombie_chicken_jockey: 0.05
  SKELETON_SPIDER_JOCKEY: 0.01
special:
  bone_in_hand_chance: 0.1
  vindicator_hand_item: DIAMOND_AXE
  illusioner_hand_item: none
  killer_bunny_on_rabbit_spawn:
    chance: 0.5
    apply-to-spawner: true
  block_helmet:
    general:
      carved_pumpkin: 0.25
    skeleton-only:
      skeleton_skull: 0.25
      carved_pumpkin: 0.25
spawn-chance:
  ZOMBIE:
    natural-limit: 0.5
    weapon:
      stone_axe: 0.25
      iron_sword: 0.5
    helmet: {}
    scale:
      "0.5": 0.25
      "2": 0.25
    drops:
      emerald: 0.01
  drowned:
    special:
      trident_channeling: 0.5
  creeper:
    enabled: false
replacement-spawn:
  zombie:
    husk: 0.3
    drowned: 0.2
`
