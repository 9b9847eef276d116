package fort

import (
	"fmt"
	"strconv"
	"strings"
)

// PlantID identifies a facility type in the fort
type PlantID int

const (
	PlantTheHalidom  PlantID = 100101
	PlantRupieMine   PlantID = 100201
	PlantDragontree  PlantID = 100301
	PlantSmithy      PlantID = 100401
	PlantFlameAltar  PlantID = 100501
	PlantWaterAltar  PlantID = 100502
	PlantWindAltar   PlantID = 100503
	PlantLightAltar  PlantID = 100504
	PlantShadowAltar PlantID = 100505
	PlantDragonata   PlantID = 100601
	PlantBlueFlowers PlantID = 101001
)

var plantNames = map[PlantID]string{
	PlantTheHalidom:  "THE_HALIDOM",
	PlantRupieMine:   "RUPIE_MINE",
	PlantDragontree:  "DRAGONTREE",
	PlantSmithy:      "SMITHY",
	PlantFlameAltar:  "FLAME_ALTAR",
	PlantWaterAltar:  "WATER_ALTAR",
	PlantWindAltar:   "WIND_ALTAR",
	PlantLightAltar:  "LIGHT_ALTAR",
	PlantShadowAltar: "SHADOW_ALTAR",
	PlantDragonata:   "DRAGONATA",
	PlantBlueFlowers: "BLUE_FLOWERS",
}

func (p PlantID) String() string {
	if name, ok := plantNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

// ParsePlantID accepts either a plant name (case-insensitive) or its numeric id
func ParsePlantID(s string) (PlantID, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for id, name := range plantNames {
		if name == upper {
			return id, nil
		}
	}
	n, err := strconv.Atoi(upper)
	if err != nil {
		return 0, fmt.Errorf("unknown plant: %s", s)
	}
	return PlantID(n), nil
}

// Material identifies a crafting material consumed by construction
type Material int

const (
	MaterialOak             Material = 201001
	MaterialGranite         Material = 201002
	MaterialPapiermache     Material = 201003
	MaterialLightmetalIngot Material = 201004
)

var materialNames = map[Material]string{
	MaterialOak:             "OAK",
	MaterialGranite:         "GRANITE",
	MaterialPapiermache:     "PAPIERMACHE",
	MaterialLightmetalIngot: "LIGHTMETAL_INGOT",
}

func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return strconv.Itoa(int(m))
}

// ParseMaterial accepts either a material name (case-insensitive) or its numeric id
func ParseMaterial(s string) (Material, error) {
	upper := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for id, name := range materialNames {
		if name == upper {
			return id, nil
		}
	}
	n, err := strconv.Atoi(upper)
	if err != nil {
		return 0, fmt.Errorf("unknown material: %s", s)
	}
	return Material(n), nil
}
